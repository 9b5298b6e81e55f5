package mockapi

import (
	"github.com/rpupo63/blog-frontend/models"
)

// Seed fills an empty store with a few posts, tags and comments
func Seed(s *Store) error {
	summary := "Getting started with the blog"
	welcome, err := s.CreatePost(models.PostRequest{
		Title:    "Hello World",
		Slug:     "hello-world",
		Content:  "The first post of this blog.",
		Summary:  &summary,
		Status:   models.PostPublished,
		TagNames: []string{"General"},
	})
	if err != nil {
		return err
	}

	if _, err := s.CreatePost(models.PostRequest{
		Title:    "Concurrency Patterns",
		Slug:     "concurrency-patterns",
		Content:  "Channels, worker pools and errgroup.",
		Status:   models.PostPublished,
		TagNames: []string{"Go", "Concurrency"},
	}); err != nil {
		return err
	}

	if _, err := s.CreatePost(models.PostRequest{
		Title:   "Unfinished Thoughts",
		Slug:    "unfinished-thoughts",
		Content: "Draft content.",
	}); err != nil {
		return err
	}

	first, err := s.CreateComment(models.CreateCommentRequest{
		PostID:     welcome.ID,
		AuthorName: "reader",
		Content:    "Welcome!",
	})
	if err != nil {
		return err
	}
	if _, err := s.UpdateCommentStatus(first.ID, models.CommentApproved); err != nil {
		return err
	}

	reply, err := s.CreateComment(models.CreateCommentRequest{
		PostID:     welcome.ID,
		ParentID:   &first.ID,
		AuthorName: "author",
		Content:    "Thanks for reading.",
	})
	if err != nil {
		return err
	}
	_, err = s.UpdateCommentStatus(reply.ID, models.CommentApproved)
	return err
}
