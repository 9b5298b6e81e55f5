package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rpupo63/blog-frontend/comments"
	"github.com/rpupo63/blog-frontend/endpoints"
	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/models"
	"github.com/rpupo63/blog-frontend/nav"
	"golang.org/x/sync/errgroup"
)

// pageQuery reads the zero-based page number from the navigation query
func pageQuery(n nav.Navigation) (int, error) {
	raw := n.Query.Get("page")
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, errs.NewInvalidFieldError("page", "must be a non-negative integer")
	}
	return page, nil
}

func (a *App) viewHome(ctx context.Context, n nav.Navigation, _ []string) error {
	page, err := pageQuery(n)
	if err != nil {
		return err
	}
	q := models.PostQuery{
		Tag:    n.Query.Get("tag"),
		Search: n.Query.Get("search"),
		Page:   &page,
	}

	posts, err := a.api.Public.ListPosts(ctx, q)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	a.renderPosts("Posts", posts, false)
	return nil
}

func (a *App) viewTagPosts(ctx context.Context, n nav.Navigation, _ []string) error {
	page, err := pageQuery(n)
	if err != nil {
		return err
	}
	slug := n.Params["slug"]

	posts, err := a.api.Public.ListPosts(ctx, models.PostQuery{Tag: slug, Page: &page})
	if err != nil {
		return fmt.Errorf("list posts tagged %s: %w", slug, err)
	}
	a.renderPosts("Posts tagged "+slug, posts, false)
	return nil
}

func (a *App) viewPostDetail(ctx context.Context, n nav.Navigation, _ []string) error {
	slug := n.Params["slug"]
	post, err := a.api.Public.GetPost(ctx, slug)
	if err != nil {
		return fmt.Errorf("get post %s: %w", slug, err)
	}

	list, err := a.api.Public.ListComments(ctx, post.ID)
	if err != nil {
		return fmt.Errorf("list comments of post %d: %w", post.ID, err)
	}
	tree, err := comments.BuildTree(post.ID, list)
	if err != nil {
		return fmt.Errorf("comments of post %d: %w", post.ID, err)
	}

	a.renderPost(post)
	a.renderTree(tree)
	return nil
}

// viewLogin signs in and, when the guard preserved one, continues to the
// path that was denied
func (a *App) viewLogin(ctx context.Context, n nav.Navigation, args []string) error {
	fs := a.flagSet("login")
	username := fs.String("username", "", "administrator name")
	password := fs.String("password", "", "administrator password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var redirect string
	if param := a.guard.RedirectParam(); param != "" {
		redirect = n.Query.Get(param)
	}

	if current, ok := a.sessions.CurrentUsername(ctx); ok && !n.Redirected {
		fmt.Fprintf(a.out, "Already signed in as %s\n", current)
		if redirect == "" {
			return nil
		}
		return a.Open(ctx, redirect, nil)
	}
	return a.login(ctx, *username, *password, redirect)
}

// viewDashboard fetches the three counters concurrently
func (a *App) viewDashboard(ctx context.Context, _ nav.Navigation, _ []string) error {
	var postCount, commentCount int64
	var tagCount int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := a.api.Admin.ListPosts(gctx, 0, 1)
		if err != nil {
			return fmt.Errorf("count posts: %w", err)
		}
		postCount = page.TotalElements
		return nil
	})
	g.Go(func() error {
		page, err := a.api.Admin.ListComments(gctx, 0, 1)
		if err != nil {
			return fmt.Errorf("count comments: %w", err)
		}
		commentCount = page.TotalElements
		return nil
	})
	g.Go(func() error {
		list, err := a.api.Public.ListTags(gctx)
		if err != nil {
			return fmt.Errorf("count tags: %w", err)
		}
		tagCount = len(list)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	username, _ := a.sessions.CurrentUsername(ctx)
	fmt.Fprintf(a.out, "Dashboard (%s)\n", username)
	fmt.Fprintf(a.out, "  posts:    %d\n", postCount)
	fmt.Fprintf(a.out, "  comments: %d\n", commentCount)
	fmt.Fprintf(a.out, "  tags:     %d\n", tagCount)
	return nil
}

func (a *App) viewAdminPosts(ctx context.Context, n nav.Navigation, _ []string) error {
	page, err := pageQuery(n)
	if err != nil {
		return err
	}
	posts, err := a.api.Admin.ListPosts(ctx, page, endpoints.DefaultAdminPostPageSize)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	a.renderPosts("All posts", posts, true)
	return nil
}

func (a *App) viewNewPost(ctx context.Context, _ nav.Navigation, args []string) error {
	req, _, err := a.parsePostForm("new post", args, models.PostRequest{})
	if err != nil {
		return err
	}

	post, err := a.api.Admin.CreatePost(ctx, req)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	a.logger.Info().Int64("postID", post.ID).Str("slug", post.Slug).Msg("post created")
	fmt.Fprintf(a.out, "Post %d created\n", post.ID)
	a.renderPost(post)
	return nil
}

// viewEditPost shows the post, or saves it when any field was given
func (a *App) viewEditPost(ctx context.Context, n nav.Navigation, args []string) error {
	id, err := strconv.ParseInt(n.Params["id"], 10, 64)
	if err != nil || id <= 0 {
		return errs.NewInvalidFieldError("id", "must be a positive integer")
	}

	post, err := a.api.Admin.GetPost(ctx, id)
	if err != nil {
		return fmt.Errorf("get post %d: %w", id, err)
	}

	req, changed, err := a.parsePostForm("edit post", args, requestFromPost(post))
	if err != nil {
		return err
	}
	if !changed {
		a.renderPost(post)
		return nil
	}

	updated, err := a.api.Admin.UpdatePost(ctx, id, req)
	if err != nil {
		return fmt.Errorf("update post %d: %w", id, err)
	}
	a.logger.Info().Int64("postID", updated.ID).Msg("post updated")
	fmt.Fprintf(a.out, "Post %d updated\n", updated.ID)
	a.renderPost(updated)
	return nil
}

func (a *App) viewAdminComments(ctx context.Context, n nav.Navigation, _ []string) error {
	page, err := pageQuery(n)
	if err != nil {
		return err
	}
	list, err := a.api.Admin.ListComments(ctx, page, endpoints.DefaultAdminCommentPageSize)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}
	a.renderComments(list)
	return nil
}
