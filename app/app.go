// Package app renders the blog in a terminal. Every view is reached through
// the navigation guard; commands that change content go through it as well.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rpupo63/blog-frontend/endpoints"
	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/nav"
	"github.com/rs/zerolog"
)

// Sessions is the read side of the session store the views need
type Sessions interface {
	CurrentUsername(ctx context.Context) (string, bool)
	Token(ctx context.Context) (string, bool)
}

type viewFunc func(ctx context.Context, n nav.Navigation, args []string) error

type App struct {
	api      endpoints.API
	sessions Sessions
	guard    *nav.Guard
	in       *bufio.Reader
	out      io.Writer
	logger   zerolog.Logger
	views    map[string]viewFunc
}

func New(api endpoints.API, sessions Sessions, guard *nav.Guard, in io.Reader, out io.Writer, logger zerolog.Logger) *App {
	a := &App{
		api:      api,
		sessions: sessions,
		guard:    guard,
		in:       bufio.NewReader(in),
		out:      out,
		logger:   logger.With().Str("component", "app").Logger(),
	}
	a.views = map[string]viewFunc{
		"Home":           a.viewHome,
		"PostDetail":     a.viewPostDetail,
		"TagPosts":       a.viewTagPosts,
		"AdminLogin":     a.viewLogin,
		"AdminDashboard": a.viewDashboard,
		"AdminPosts":     a.viewAdminPosts,
		"AdminNewPost":   a.viewNewPost,
		"AdminEditPost":  a.viewEditPost,
		"AdminComments":  a.viewAdminComments,
	}
	return a
}

const usage = `usage: blogctl <command> [flags]

commands:
  open <path> [flags]      render the view for a path, e.g. / or /posts/hello-world
  login                    sign in as administrator
  logout                   forget the stored session
  whoami                   show the signed in user
  comment                  leave a comment on a post
  moderate                 set the status of a comment
  delete-post              delete a post
  delete-comment           delete a comment
  tag-add                  create a tag
  tag-rm                   delete a tag
`

// Run executes one command line
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errs.NewBadRequestError("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "open":
		return a.cmdOpen(ctx, rest)
	case "login":
		return a.cmdLogin(ctx, rest)
	case "logout":
		return a.cmdLogout(ctx)
	case "whoami":
		return a.cmdWhoami(ctx)
	case "comment":
		return a.cmdComment(ctx, rest)
	case "moderate":
		return a.cmdModerate(ctx, rest)
	case "delete-post":
		return a.cmdDeletePost(ctx, rest)
	case "delete-comment":
		return a.cmdDeleteComment(ctx, rest)
	case "tag-add":
		return a.cmdTagAdd(ctx, rest)
	case "tag-rm":
		return a.cmdTagRemove(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return errs.NewBadRequestError(fmt.Sprintf("unknown command %q", cmd))
	}
}

// Open navigates to target and renders whatever view the guard resolves to
func (a *App) Open(ctx context.Context, target string, args []string) error {
	n, err := a.guard.Navigate(ctx, target)
	if err != nil {
		return err
	}
	a.logger.Debug().
		Str("target", target).
		Str("route", n.Route.Name).
		Bool("redirected", n.Redirected).
		Msg("navigate")

	view, ok := a.views[n.Route.Name]
	if !ok {
		return fmt.Errorf("route %s has no view: %w", n.Route.Name, errs.ErrRouteNotFound)
	}
	if n.Redirected {
		fmt.Fprintf(a.out, "%s requires a signed in administrator\n", n.Requested)
	}
	return view(ctx, n, args)
}

// authorize resolves an admin path through the guard and fails when the
// guard would send the user to the login page instead
func (a *App) authorize(ctx context.Context, path string) error {
	n, err := a.guard.Navigate(ctx, path)
	if err != nil {
		return err
	}
	if n.Redirected {
		return fmt.Errorf("%s: sign in with `blogctl login`: %w", path, errs.ErrUnauthorized)
	}
	return nil
}

// prompt reads one trimmed line after printing label
func (a *App) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}
