package app

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/blog-frontend/comments"
	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/models"
	"github.com/rpupo63/blog-frontend/session"
)

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) cmdOpen(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return errs.NewMissingRequiredFieldError("path")
	}
	return a.Open(ctx, args[0], args[1:])
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	username := fs.String("username", "", "administrator name")
	password := fs.String("password", "", "administrator password")
	redirect := fs.String("redirect", "", "path to open after signing in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.login(ctx, *username, *password, *redirect)
}

// login asks for whatever credential is missing, stores the session and
// continues to redirect when one is given
func (a *App) login(ctx context.Context, username, password, redirect string) error {
	var err error
	if username == "" {
		if username, err = a.prompt("Username"); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = a.prompt("Password"); err != nil {
			return err
		}
	}

	resp, err := a.api.Auth.Login(ctx, username, password)
	if err != nil {
		a.logger.Warn().Err(err).Str("username", username).Msg("login failed")
		return fmt.Errorf("login: %w", err)
	}
	a.logger.Info().Str("username", resp.Username).Msg("signed in")
	fmt.Fprintf(a.out, "Signed in as %s\n", resp.Username)

	if redirect == "" {
		return nil
	}
	return a.Open(ctx, redirect, nil)
}

func (a *App) cmdLogout(ctx context.Context) error {
	if err := a.api.Auth.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) cmdWhoami(ctx context.Context) error {
	username, ok := a.sessions.CurrentUsername(ctx)
	if !ok {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", username)

	token, _ := a.sessions.Token(ctx)
	claims, err := session.TokenClaims(token)
	if err != nil {
		a.logger.Debug().Err(err).Msg("session token is not a readable JWT")
		return nil
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Token expires %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// cmdComment posts a comment after checking the reply target against the
// approved comments of the post
func (a *App) cmdComment(ctx context.Context, args []string) error {
	fs := a.flagSet("comment")
	postID := fs.Int64("post", 0, "id of the post")
	replyTo := fs.Int64("reply", 0, "id of the comment to reply to")
	author := fs.String("author", "", "your name")
	email := fs.String("email", "", "your email")
	content := fs.String("content", "", "comment text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *postID <= 0 {
		return errs.NewMissingRequiredFieldError("post")
	}
	if strings.TrimSpace(*content) == "" {
		return errs.NewMissingRequiredFieldError("content")
	}

	req := models.CreateCommentRequest{
		PostID:      *postID,
		AuthorName:  *author,
		AuthorEmail: *email,
		Content:     *content,
	}
	if *replyTo > 0 {
		req.ParentID = replyTo

		existing, err := a.api.Public.ListComments(ctx, *postID)
		if err != nil {
			return fmt.Errorf("load comments of post %d: %w", *postID, err)
		}
		tree, err := comments.BuildTree(*postID, existing)
		if err != nil {
			return fmt.Errorf("comments of post %d: %w", *postID, err)
		}
		if err := tree.ValidateReply(*postID, req.ParentID); err != nil {
			return err
		}
	}

	created, err := a.api.Public.CreateComment(ctx, req)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	fmt.Fprintf(a.out, "Comment %d submitted, status %s\n", created.ID, created.Status)
	return nil
}

func (a *App) cmdModerate(ctx context.Context, args []string) error {
	fs := a.flagSet("moderate")
	id := fs.Int64("id", 0, "comment id")
	status := fs.String("status", "", "PENDING, APPROVED or REJECTED")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errs.NewMissingRequiredFieldError("id")
	}
	s := models.CommentStatus(strings.ToUpper(*status))
	if !s.Valid() {
		return errs.NewInvalidFieldError("status", "must be PENDING, APPROVED or REJECTED")
	}
	if err := a.authorize(ctx, "/admin/comments"); err != nil {
		return err
	}

	c, err := a.api.Admin.UpdateCommentStatus(ctx, *id, s)
	if err != nil {
		return fmt.Errorf("moderate comment %d: %w", *id, err)
	}
	fmt.Fprintf(a.out, "Comment %d is now %s\n", c.ID, c.Status)
	return nil
}

func (a *App) cmdDeletePost(ctx context.Context, args []string) error {
	id, err := a.parseID("delete-post", args)
	if err != nil {
		return err
	}
	if err := a.authorize(ctx, "/admin/posts"); err != nil {
		return err
	}
	if err := a.api.Admin.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	fmt.Fprintf(a.out, "Post %d deleted\n", id)
	return nil
}

func (a *App) cmdDeleteComment(ctx context.Context, args []string) error {
	id, err := a.parseID("delete-comment", args)
	if err != nil {
		return err
	}
	if err := a.authorize(ctx, "/admin/comments"); err != nil {
		return err
	}
	if err := a.api.Admin.DeleteComment(ctx, id); err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	fmt.Fprintf(a.out, "Comment %d deleted\n", id)
	return nil
}

func (a *App) cmdTagAdd(ctx context.Context, args []string) error {
	fs := a.flagSet("tag-add")
	name := fs.String("name", "", "tag name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*name) == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if err := a.authorize(ctx, "/admin"); err != nil {
		return err
	}

	tag, err := a.api.Admin.CreateTag(ctx, *name)
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	fmt.Fprintf(a.out, "Tag %d created: %s (%s)\n", tag.ID, tag.Name, tag.Slug)
	return nil
}

func (a *App) cmdTagRemove(ctx context.Context, args []string) error {
	id, err := a.parseID("tag-rm", args)
	if err != nil {
		return err
	}
	if err := a.authorize(ctx, "/admin"); err != nil {
		return err
	}
	if err := a.api.Admin.DeleteTag(ctx, id); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	fmt.Fprintf(a.out, "Tag %d deleted\n", id)
	return nil
}

func (a *App) parseID(name string, args []string) (int64, error) {
	fs := a.flagSet(name)
	id := fs.Int64("id", 0, "id")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if *id <= 0 {
		return 0, errs.NewMissingRequiredFieldError("id")
	}
	return *id, nil
}
