package models

// CommentStatus is the moderation state of a comment
type CommentStatus string

const (
	CommentPending  CommentStatus = "PENDING"
	CommentApproved CommentStatus = "APPROVED"
	CommentRejected CommentStatus = "REJECTED"
)

// Valid reports whether s is one of the known moderation states
func (s CommentStatus) Valid() bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected:
		return true
	}
	return false
}

// Comment is a reader comment. ParentID points at another comment of the same post.
type Comment struct {
	ID         int64         `json:"id"`
	PostID     int64         `json:"postId"`
	ParentID   *int64        `json:"parentId,omitempty"`
	AuthorName string        `json:"authorName"`
	Content    string        `json:"content"`
	Status     CommentStatus `json:"status"`
	CreatedAt  Timestamp     `json:"createdAt"`
}

// CreateCommentRequest is the body of the public create comment call
type CreateCommentRequest struct {
	PostID      int64  `json:"postId"`
	ParentID    *int64 `json:"parentId,omitempty"`
	AuthorName  string `json:"authorName,omitempty"`
	AuthorEmail string `json:"authorEmail,omitempty"`
	Content     string `json:"content"`
}

// CommentStatusRequest is the body of the moderation call
type CommentStatusRequest struct {
	Status CommentStatus `json:"status"`
}
