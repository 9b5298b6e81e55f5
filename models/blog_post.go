package models

// PostStatus is the publication state of a post
type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPublished PostStatus = "PUBLISHED"
)

// Post represents a complete blog post with metadata
type Post struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Content    string     `json:"content"`
	Summary    string     `json:"summary"`
	CoverImage *string    `json:"coverImage,omitempty"`
	Status     PostStatus `json:"status"`
	Views      int64      `json:"views"`
	Tags       []string   `json:"tags"`
	CreatedAt  Timestamp  `json:"createdAt"`
	UpdatedAt  Timestamp  `json:"updatedAt"`
}

// PostRequest is the body of the admin create and update post calls
type PostRequest struct {
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Content    string     `json:"content"`
	Summary    *string    `json:"summary,omitempty"`
	CoverImage *string    `json:"coverImage,omitempty"`
	Status     PostStatus `json:"status,omitempty"`
	TagNames   []string   `json:"tagNames,omitempty"`
}

// PostQuery filters the public post list. Zero values are not sent.
type PostQuery struct {
	Tag    string
	Search string
	Page   *int
	Size   *int
}
