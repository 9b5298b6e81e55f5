package app

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpupo63/blog-frontend/client"
	"github.com/rpupo63/blog-frontend/endpoints"
	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/mockapi"
	"github.com/rpupo63/blog-frontend/models"
	"github.com/rpupo63/blog-frontend/nav"
	"github.com/rpupo63/blog-frontend/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	app      *App
	out      *bytes.Buffer
	store    *mockapi.Store
	sessions *session.Store
}

func newHarness(t *testing.T, input string, opts ...nav.Option) *harness {
	t.Helper()

	store := mockapi.NewStore()
	require.NoError(t, mockapi.Seed(store))
	router, err := mockapi.NewRouter(mockapi.Options{
		JWTSecret:     []byte("test-secret"),
		AdminUsername: "admin",
		AdminPassword: "admin123",
		Logger:        zerolog.Nop(),
	}, store)
	require.NoError(t, err)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	sessions := session.New(nil)
	cli, err := client.New(srv.URL, sessions)
	require.NoError(t, err)
	guard, err := nav.NewGuard(nav.DefaultTable(), sessions, opts...)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a := New(endpoints.New(cli, sessions), sessions, guard, strings.NewReader(input), out, zerolog.Nop())
	return &harness{app: a, out: out, store: store, sessions: sessions}
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.out.Reset()
	return h.app.Run(context.Background(), args)
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	require.NoError(t, h.run(t, "login", "-username", "admin", "-password", "admin123"))
}

func TestPublicViews(t *testing.T) {
	h := newHarness(t, "")

	t.Run("home lists published posts", func(t *testing.T) {
		require.NoError(t, h.run(t, "open", "/"))
		assert.Contains(t, h.out.String(), "Hello World")
		assert.Contains(t, h.out.String(), "Concurrency Patterns")
		assert.NotContains(t, h.out.String(), "Unfinished Thoughts")
	})

	t.Run("home search", func(t *testing.T) {
		require.NoError(t, h.run(t, "open", "/?search=errgroup"))
		assert.Contains(t, h.out.String(), "Concurrency Patterns")
		assert.NotContains(t, h.out.String(), "Hello World")
	})

	t.Run("tag posts", func(t *testing.T) {
		require.NoError(t, h.run(t, "open", "/tags/go"))
		assert.Contains(t, h.out.String(), "Posts tagged go")
		assert.Contains(t, h.out.String(), "Concurrency Patterns")
	})

	t.Run("post detail with threaded comments", func(t *testing.T) {
		require.NoError(t, h.run(t, "open", "/posts/hello-world"))
		out := h.out.String()
		assert.Contains(t, out, "# Hello World")
		assert.Contains(t, out, "Comments (2)")
		assert.Contains(t, out, "\n  [1] reader: Welcome!\n")
		assert.Contains(t, out, "\n    [2] author: Thanks for reading.\n")
	})

	t.Run("missing post", func(t *testing.T) {
		err := h.run(t, "open", "/posts/nope")
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("unknown path", func(t *testing.T) {
		err := h.run(t, "open", "/nowhere/at/all")
		assert.ErrorIs(t, err, errs.ErrRouteNotFound)
	})
}

func TestGuardSendsAdminViewsToLogin(t *testing.T) {
	t.Run("without redirect preservation", func(t *testing.T) {
		h := newHarness(t, "admin\nadmin123\n")

		require.NoError(t, h.run(t, "open", "/admin"))
		out := h.out.String()
		assert.Contains(t, out, "/admin requires a signed in administrator")
		assert.Contains(t, out, "Signed in as admin")
		assert.NotContains(t, out, "Dashboard")
		assert.True(t, h.sessions.IsAuthenticated(context.Background()))
	})

	t.Run("with redirect preservation", func(t *testing.T) {
		h := newHarness(t, "admin\nadmin123\n", nav.WithRedirectParam("redirect"))

		require.NoError(t, h.run(t, "open", "/admin"))
		out := h.out.String()
		assert.Contains(t, out, "Signed in as admin")
		assert.Contains(t, out, "Dashboard (admin)")
		assert.Contains(t, out, "posts:    3")
		assert.Contains(t, out, "comments: 2")
		assert.Contains(t, out, "tags:     3")
	})

	t.Run("wrong password keeps the user signed out", func(t *testing.T) {
		h := newHarness(t, "admin\nwrong\n")

		err := h.run(t, "open", "/admin/posts")
		assert.True(t, errs.IsUnauthorized(err))
		assert.False(t, h.sessions.IsAuthenticated(context.Background()))
	})
}

func TestSessionCommands(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "whoami"))
	assert.Equal(t, "Not signed in\n", h.out.String())

	h.login(t)
	require.NoError(t, h.run(t, "whoami"))
	assert.Contains(t, h.out.String(), "Signed in as admin")
	assert.Contains(t, h.out.String(), "Token expires")

	require.NoError(t, h.run(t, "logout"))
	assert.False(t, h.sessions.IsAuthenticated(context.Background()))
	require.NoError(t, h.run(t, "logout"))
}

func TestAdminCommandsRequireSession(t *testing.T) {
	h := newHarness(t, "")

	err := h.run(t, "delete-post", "-id", "1")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = h.store.GetPost(1)
	assert.NoError(t, err)

	err = h.run(t, "tag-add", "-name", "Rust")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	h.login(t)
	require.NoError(t, h.run(t, "delete-post", "-id", "1"))
	_, err = h.store.GetPost(1)
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, h.run(t, "tag-add", "-name", "Web Dev"))
	assert.Contains(t, h.out.String(), "(web-dev)")
}

func TestAdminPostForms(t *testing.T) {
	h := newHarness(t, "")
	h.login(t)

	require.NoError(t, h.run(t, "open", "/admin/posts/new",
		"-title", "Fresh", "-slug", "fresh", "-content", "body", "-status", "published", "-tags", "Go, News"))
	assert.Contains(t, h.out.String(), "Post 4 created")

	post, err := h.store.GetPost(4)
	require.NoError(t, err)
	assert.Equal(t, models.PostPublished, post.Status)
	assert.Equal(t, []string{"Go", "News"}, post.Tags)

	require.NoError(t, h.run(t, "open", "/admin/posts/edit/4"))
	assert.Contains(t, h.out.String(), "# Fresh")

	require.NoError(t, h.run(t, "open", "/admin/posts/edit/4", "-title", "Renamed"))
	post, err = h.store.GetPost(4)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", post.Title)
	assert.Equal(t, []string{"Go", "News"}, post.Tags)

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "post.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"title":"From File","slug":"from-file","content":"x"}`), 0o600))
		require.NoError(t, h.run(t, "open", "/admin/posts/new", "-file", path))
		assert.Contains(t, h.out.String(), "# From File")
	})

	t.Run("missing title", func(t *testing.T) {
		err := h.run(t, "open", "/admin/posts/new", "-slug", "x", "-content", "y")
		assert.True(t, errs.IsMissingRequiredFieldError(err))
	})

	t.Run("admin list shows drafts", func(t *testing.T) {
		require.NoError(t, h.run(t, "open", "/admin/posts"))
		assert.Contains(t, h.out.String(), "Unfinished Thoughts")
		assert.Contains(t, h.out.String(), "DRAFT")
	})
}

func TestCommentsAndModeration(t *testing.T) {
	h := newHarness(t, "")

	err := h.run(t, "comment", "-post", "1", "-reply", "99", "-content", "hi")
	assert.ErrorIs(t, err, errs.ErrParentNotFound)

	require.NoError(t, h.run(t, "comment", "-post", "1", "-reply", "2", "-author", "guest", "-content", "Nice"))
	assert.Equal(t, "Comment 3 submitted, status PENDING\n", h.out.String())

	require.NoError(t, h.run(t, "open", "/posts/hello-world"))
	assert.NotContains(t, h.out.String(), "Nice")

	err = h.run(t, "moderate", "-id", "3", "-status", "approved")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	h.login(t)
	require.NoError(t, h.run(t, "open", "/admin/comments"))
	assert.Contains(t, h.out.String(), "PENDING")

	require.NoError(t, h.run(t, "moderate", "-id", "3", "-status", "approved"))
	assert.Equal(t, "Comment 3 is now APPROVED\n", h.out.String())

	require.NoError(t, h.run(t, "open", "/posts/hello-world"))
	assert.Contains(t, h.out.String(), "\n      [3] guest: Nice\n")

	require.NoError(t, h.run(t, "delete-comment", "-id", "3"))
	assert.Len(t, h.store.ApprovedComments(1), 2)
}

func TestUsage(t *testing.T) {
	h := newHarness(t, "")

	assert.True(t, errs.IsBadRequest(h.run(t)))
	assert.True(t, errs.IsBadRequest(h.run(t, "frobnicate")))
	assert.NoError(t, h.run(t, "help"))
	assert.Contains(t, h.out.String(), "usage: blogctl")
}
