package mockapi

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rpupo63/blog-frontend/comments"
	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/models"
)

// Store is the in-memory content database behind the fake API
type Store struct {
	mu       sync.Mutex
	posts    map[int64]*models.Post
	comments map[int64]*models.Comment
	tags     map[int64]*models.Tag

	nextPostID    int64
	nextCommentID int64
	nextTagID     int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		posts:    map[int64]*models.Post{},
		comments: map[int64]*models.Comment{},
		tags:     map[int64]*models.Tag{},
		now:      time.Now,
	}
}

// WithClock replaces the time source; used to get a stable ordering in tests
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) CreatePost(req models.PostRequest) (models.Post, error) {
	if err := validatePostRequest(&req); err != nil {
		return models.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(req.Slug, 0) {
		return models.Post{}, errs.NewAlreadyExists("post", "slug")
	}

	now := s.now().UTC()
	s.nextPostID++
	post := &models.Post{
		ID:        s.nextPostID,
		Views:     0,
		CreatedAt: models.NewTimestamp(now),
	}
	s.applyPostRequest(post, req, now)
	s.posts[post.ID] = post
	return clonePost(post), nil
}

func (s *Store) UpdatePost(id int64, req models.PostRequest) (models.Post, error) {
	if err := validatePostRequest(&req); err != nil {
		return models.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, errs.NewNotFound("post")
	}
	if s.slugTaken(req.Slug, id) {
		return models.Post{}, errs.NewAlreadyExists("post", "slug")
	}

	s.applyPostRequest(post, req, s.now().UTC())
	return clonePost(post), nil
}

// DeletePost removes a post together with its comments
func (s *Store) DeletePost(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return errs.NewNotFound("post")
	}
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s *Store) GetPost(id int64) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, errs.NewNotFound("post")
	}
	return clonePost(post), nil
}

// ReadPublishedPost returns a published post by slug and counts the view
func (s *Store) ReadPublishedPost(slug string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, post := range s.posts {
		if post.Slug == slug && post.Status == models.PostPublished {
			post.Views++
			return clonePost(post), nil
		}
	}
	return models.Post{}, errs.NewNotFound("post")
}

// PublishedPosts lists published posts, newest first, filtered by tag slug or
// by a case-insensitive keyword in title, summary or content
func (s *Store) PublishedPosts(tagSlug, search string) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	keyword := strings.ToLower(strings.TrimSpace(search))
	var out []models.Post
	for _, post := range s.posts {
		if post.Status != models.PostPublished {
			continue
		}
		if tagSlug != "" && !slices.ContainsFunc(post.Tags, func(name string) bool { return models.TagSlug(name) == tagSlug }) {
			continue
		}
		if tagSlug == "" && keyword != "" && !matchesKeyword(post, keyword) {
			continue
		}
		out = append(out, clonePost(post))
	}
	sortNewestFirst(out)
	return out
}

// AllPosts lists every post regardless of status, newest first
func (s *Store) AllPosts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		out = append(out, clonePost(post))
	}
	sortNewestFirst(out)
	return out
}

// CreateComment stores a pending comment after checking its parent link
func (s *Store) CreateComment(req models.CreateCommentRequest) (models.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return models.Comment{}, errs.NewMissingRequiredFieldError("content")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[req.PostID]; !ok {
		return models.Comment{}, errs.NewNotFound("post")
	}

	if req.ParentID != nil {
		tree, err := comments.BuildTree(req.PostID, s.commentsOf(req.PostID, false))
		if err != nil {
			return models.Comment{}, errs.NewInternalErrorWithCause("comment tree", err)
		}
		if err := tree.ValidateReply(req.PostID, req.ParentID); err != nil {
			return models.Comment{}, errs.NewInvalidFieldError("parentId", err.Error())
		}
	}

	s.nextCommentID++
	c := &models.Comment{
		ID:         s.nextCommentID,
		PostID:     req.PostID,
		ParentID:   req.ParentID,
		AuthorName: req.AuthorName,
		Content:    req.Content,
		Status:     models.CommentPending,
		CreatedAt:  models.NewTimestamp(s.now().UTC()),
	}
	s.comments[c.ID] = c
	return *c, nil
}

// ApprovedComments lists the approved comments of a post in creation order
func (s *Store) ApprovedComments(postID int64) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commentsOf(postID, true)
}

// AllComments lists every comment, newest first
func (s *Store) AllComments() []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt.Time) {
			return out[i].CreatedAt.After(out[j].CreatedAt.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *Store) UpdateCommentStatus(id int64, status models.CommentStatus) (models.Comment, error) {
	if !status.Valid() {
		return models.Comment{}, errs.NewInvalidFieldError("status", "must be PENDING, APPROVED or REJECTED")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return models.Comment{}, errs.NewNotFound("comment")
	}
	c.Status = status
	return *c, nil
}

func (s *Store) DeleteComment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return errs.NewNotFound("comment")
	}
	delete(s.comments, id)
	return nil
}

// Tags lists all tags by id
func (s *Store) Tags() []models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) CreateTag(name string) (models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tag{}, errs.NewMissingRequiredFieldError("name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tags {
		if t.Slug == models.TagSlug(name) {
			return models.Tag{}, errs.NewAlreadyExists("tag", "slug")
		}
	}
	return *s.addTag(name), nil
}

// DeleteTag removes a tag and detaches it from every post
func (s *Store) DeleteTag(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag, ok := s.tags[id]
	if !ok {
		return errs.NewNotFound("tag")
	}
	delete(s.tags, id)
	for _, post := range s.posts {
		post.Tags = slices.DeleteFunc(post.Tags, func(name string) bool { return name == tag.Name })
	}
	return nil
}

// commentsOf must be called with the lock held
func (s *Store) commentsOf(postID int64, approvedOnly bool) []models.Comment {
	var out []models.Comment
	for _, c := range s.comments {
		if c.PostID != postID {
			continue
		}
		if approvedOnly && c.Status != models.CommentApproved {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) slugTaken(slug string, except int64) bool {
	for _, post := range s.posts {
		if post.Slug == slug && post.ID != except {
			return true
		}
	}
	return false
}

// applyPostRequest copies the request onto post, creating missing tags by name
func (s *Store) applyPostRequest(post *models.Post, req models.PostRequest, now time.Time) {
	post.Title = req.Title
	post.Slug = req.Slug
	post.Content = req.Content
	post.Summary = ""
	if req.Summary != nil {
		post.Summary = *req.Summary
	}
	post.CoverImage = req.CoverImage
	post.Status = req.Status
	post.UpdatedAt = models.NewTimestamp(now)

	if req.TagNames == nil {
		if post.Tags == nil {
			post.Tags = []string{}
		}
		return
	}
	names := []string{}
	for _, name := range req.TagNames {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(names, name) {
			continue
		}
		if s.tagByName(name) == nil {
			s.addTag(name)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	post.Tags = names
}

func (s *Store) tagByName(name string) *models.Tag {
	for _, t := range s.tags {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (s *Store) addTag(name string) *models.Tag {
	s.nextTagID++
	tag := &models.Tag{ID: s.nextTagID, Name: name, Slug: models.TagSlug(name)}
	s.tags[tag.ID] = tag
	return tag
}

func validatePostRequest(req *models.PostRequest) error {
	switch {
	case strings.TrimSpace(req.Title) == "":
		return errs.NewMissingRequiredFieldError("title")
	case strings.TrimSpace(req.Slug) == "":
		return errs.NewMissingRequiredFieldError("slug")
	case strings.TrimSpace(req.Content) == "":
		return errs.NewMissingRequiredFieldError("content")
	}
	if req.Status == "" {
		req.Status = models.PostDraft
	}
	if req.Status != models.PostDraft && req.Status != models.PostPublished {
		return errs.NewInvalidFieldError("status", "must be DRAFT or PUBLISHED")
	}
	return nil
}

func matchesKeyword(post *models.Post, keyword string) bool {
	return strings.Contains(strings.ToLower(post.Title), keyword) ||
		strings.Contains(strings.ToLower(post.Summary), keyword) ||
		strings.Contains(strings.ToLower(post.Content), keyword)
}

func clonePost(post *models.Post) models.Post {
	out := *post
	out.Tags = slices.Clone(post.Tags)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

func sortNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt.Time) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt.Time)
		}
		return posts[i].ID > posts[j].ID
	})
}
