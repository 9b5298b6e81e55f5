package endpoints

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rpupo63/blog-frontend/models"
)

// Public wraps the unauthenticated reader endpoints
type Public struct {
	doer Doer
}

// ListPosts calls GET /posts
func (p Public) ListPosts(ctx context.Context, q models.PostQuery) (models.Page[models.Post], error) {
	params := url.Values{}
	if q.Tag != "" {
		params.Set("tag", q.Tag)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Page != nil {
		params.Set("page", strconv.Itoa(*q.Page))
	}
	if q.Size != nil {
		params.Set("size", strconv.Itoa(*q.Size))
	}

	var page models.Page[models.Post]
	err := p.doer.Do(ctx, http.MethodGet, "/posts", params, nil, &page)
	return page, err
}

// GetPost calls GET /posts/{slug}
func (p Public) GetPost(ctx context.Context, slug string) (models.Post, error) {
	var post models.Post
	err := p.doer.Do(ctx, http.MethodGet, "/posts/"+slug, nil, nil, &post)
	return post, err
}

// ListTags calls GET /tags
func (p Public) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := p.doer.Do(ctx, http.MethodGet, "/tags", nil, nil, &tags)
	return tags, err
}

// ListComments calls GET /comments?postId=
func (p Public) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	params := url.Values{"postId": {strconv.FormatInt(postID, 10)}}

	var comments []models.Comment
	err := p.doer.Do(ctx, http.MethodGet, "/comments", params, nil, &comments)
	return comments, err
}

// CreateComment calls POST /comments
func (p Public) CreateComment(ctx context.Context, req models.CreateCommentRequest) (models.Comment, error) {
	var comment models.Comment
	err := p.doer.Do(ctx, http.MethodPost, "/comments", nil, req, &comment)
	return comment, err
}
