package endpoints

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rpupo63/blog-frontend/models"
)

const (
	DefaultAdminPostPageSize    = 10
	DefaultAdminCommentPageSize = 20
)

// Admin wraps the endpoints under /admin. The backend checks the bearer token;
// the wrappers themselves do not look at the session.
type Admin struct {
	doer Doer
}

func pageParams(page, size int) url.Values {
	return url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
}

// ListPosts calls GET /admin/posts
func (a Admin) ListPosts(ctx context.Context, page, size int) (models.Page[models.Post], error) {
	var out models.Page[models.Post]
	err := a.doer.Do(ctx, http.MethodGet, "/admin/posts", pageParams(page, size), nil, &out)
	return out, err
}

// GetPost calls GET /admin/posts/{id}
func (a Admin) GetPost(ctx context.Context, id int64) (models.Post, error) {
	var post models.Post
	err := a.doer.Do(ctx, http.MethodGet, fmt.Sprintf("/admin/posts/%d", id), nil, nil, &post)
	return post, err
}

// CreatePost calls POST /admin/posts
func (a Admin) CreatePost(ctx context.Context, req models.PostRequest) (models.Post, error) {
	var post models.Post
	err := a.doer.Do(ctx, http.MethodPost, "/admin/posts", nil, req, &post)
	return post, err
}

// UpdatePost calls PUT /admin/posts/{id}
func (a Admin) UpdatePost(ctx context.Context, id int64, req models.PostRequest) (models.Post, error) {
	var post models.Post
	err := a.doer.Do(ctx, http.MethodPut, fmt.Sprintf("/admin/posts/%d", id), nil, req, &post)
	return post, err
}

// DeletePost calls DELETE /admin/posts/{id}
func (a Admin) DeletePost(ctx context.Context, id int64) error {
	return a.doer.Do(ctx, http.MethodDelete, fmt.Sprintf("/admin/posts/%d", id), nil, nil, nil)
}

// ListComments calls GET /admin/comments
func (a Admin) ListComments(ctx context.Context, page, size int) (models.Page[models.Comment], error) {
	var out models.Page[models.Comment]
	err := a.doer.Do(ctx, http.MethodGet, "/admin/comments", pageParams(page, size), nil, &out)
	return out, err
}

// UpdateCommentStatus calls PUT /admin/comments/{id}/status
func (a Admin) UpdateCommentStatus(ctx context.Context, id int64, status models.CommentStatus) (models.Comment, error) {
	var comment models.Comment
	path := fmt.Sprintf("/admin/comments/%d/status", id)
	err := a.doer.Do(ctx, http.MethodPut, path, nil, models.CommentStatusRequest{Status: status}, &comment)
	return comment, err
}

// DeleteComment calls DELETE /admin/comments/{id}
func (a Admin) DeleteComment(ctx context.Context, id int64) error {
	return a.doer.Do(ctx, http.MethodDelete, fmt.Sprintf("/admin/comments/%d", id), nil, nil, nil)
}

// CreateTag calls POST /admin/tags
func (a Admin) CreateTag(ctx context.Context, name string) (models.Tag, error) {
	var tag models.Tag
	err := a.doer.Do(ctx, http.MethodPost, "/admin/tags", nil, map[string]string{"name": name}, &tag)
	return tag, err
}

// DeleteTag calls DELETE /admin/tags/{id}
func (a Admin) DeleteTag(ctx context.Context, id int64) error {
	return a.doer.Do(ctx, http.MethodDelete, fmt.Sprintf("/admin/tags/%d", id), nil, nil, nil)
}
