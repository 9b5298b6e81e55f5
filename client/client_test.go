package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   map[string]any
}

type recorder struct {
	mu   sync.Mutex
	seen []seenRequest
}

func (r *recorder) last() seenRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[len(r.seen)-1]
}

func newBackend(t *testing.T) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen := seenRequest{
				method: r.Method,
				path:   r.URL.Path,
				query:  r.URL.Query(),
				header: r.Header.Clone(),
			}
			if r.Body != nil {
				_ = json.NewDecoder(r.Body).Decode(&seen.body)
			}
			rec.mu.Lock()
			rec.seen = append(rec.seen, seen)
			rec.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})
	router.Route("/api", func(r chi.Router) {
		r.Get("/tags", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":1,"name":"Go","slug":"go"}]`))
		})
		r.Post("/echo", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Delete("/admin/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Get("/admin/posts", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized","status":"error"}`))
		})
		r.Get("/broken", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		})
		r.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		})
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestDefaults(t *testing.T) {
	c, err := New("http://localhost:8080/", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", c.BaseURL())
	assert.Equal(t, 10*time.Second, c.Timeout())

	_, err = New("localhost", nil)
	assert.Error(t, err)
}

func TestBearerHeaderFollowsSession(t *testing.T) {
	ctx := context.Background()
	srv, rec := newBackend(t)
	store := session.New(nil)

	c, err := New(srv.URL, store)
	require.NoError(t, err)

	t.Run("no session sends no header", func(t *testing.T) {
		require.NoError(t, c.Get(ctx, "/tags", nil, nil))
		_, present := rec.last().header["Authorization"]
		assert.False(t, present)
	})

	t.Run("session token is attached verbatim", func(t *testing.T) {
		for _, token := range []string{"abc", "eyJhbGciOi.payload.sig", "with space"} {
			require.NoError(t, store.SetSession(ctx, token, "alice"))
			require.NoError(t, c.Get(ctx, "/tags", nil, nil))
			assert.Equal(t, "Bearer "+token, rec.last().header.Get("Authorization"))
		}
	})

	t.Run("every method carries the token", func(t *testing.T) {
		require.NoError(t, store.SetSession(ctx, "tok", "alice"))
		require.NoError(t, c.Post(ctx, "/echo", map[string]string{"a": "b"}, nil))
		assert.Equal(t, "Bearer tok", rec.last().header.Get("Authorization"))
		require.NoError(t, c.Delete(ctx, "/admin/posts/7"))
		assert.Equal(t, "Bearer tok", rec.last().header.Get("Authorization"))
		assert.Equal(t, "/api/admin/posts/7", rec.last().path)
	})

	t.Run("logout removes the header", func(t *testing.T) {
		require.NoError(t, store.ClearSession(ctx))
		require.NoError(t, c.Get(ctx, "/tags", nil, nil))
		assert.Empty(t, rec.last().header.Get("Authorization"))
	})
}

func TestRequestShape(t *testing.T) {
	ctx := context.Background()
	srv, rec := newBackend(t)
	c, err := New(srv.URL, nil, WithUserAgent("blogctl-test"))
	require.NoError(t, err)

	var tags []map[string]any
	require.NoError(t, c.Get(ctx, "tags", url.Values{"page": {"2"}}, &tags))
	assert.Len(t, tags, 1)
	assert.Equal(t, "2", rec.last().query.Get("page"))
	assert.Equal(t, "blogctl-test", rec.last().header.Get("User-Agent"))
	assert.NotEmpty(t, rec.last().header.Get(RequestIDHeader))

	require.NoError(t, c.Post(ctx, "/echo", map[string]string{"name": "go"}, nil))
	assert.Equal(t, "application/json", rec.last().header.Get("Content-Type"))
	assert.Equal(t, "go", rec.last().body["name"])
}

func TestHTTPErrorIsPropagated(t *testing.T) {
	ctx := context.Background()
	srv, _ := newBackend(t)
	c, err := New(srv.URL, nil)
	require.NoError(t, err)

	err = c.Get(ctx, "/broken", nil, nil)
	var respErr *errs.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
	assert.Equal(t, "boom", string(respErr.Body))
	assert.False(t, errs.IsTransport(err))

	err = c.Get(ctx, "/admin/posts", nil, nil)
	assert.True(t, errs.IsUnauthorized(err))
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "unauthorized", respErr.Message)
}

func TestTransportErrorIsPropagated(t *testing.T) {
	srv, _ := newBackend(t)
	addr := srv.URL
	srv.Close()

	c, err := New(addr, nil)
	require.NoError(t, err)

	err = c.Get(context.Background(), "/tags", nil, nil)
	assert.True(t, errs.IsTransport(err))
	assert.Zero(t, errs.StatusCode(err))
}

func TestTimeout(t *testing.T) {
	srv, _ := newBackend(t)
	c, err := New(srv.URL, nil, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	err = c.Get(context.Background(), "/slow", nil, nil)
	assert.True(t, errs.IsTransport(err))
}

func TestUnauthorizedHook(t *testing.T) {
	ctx := context.Background()
	srv, _ := newBackend(t)
	store := session.New(nil)
	require.NoError(t, store.SetSession(ctx, "stale", "alice"))

	t.Run("absent by default", func(t *testing.T) {
		c, err := New(srv.URL, store)
		require.NoError(t, err)
		assert.Error(t, c.Get(ctx, "/admin/posts", nil, nil))
		assert.True(t, store.IsAuthenticated(ctx))
	})

	t.Run("runs once per 401", func(t *testing.T) {
		calls := 0
		c, err := New(srv.URL, store, WithUnauthorizedHook(func(ctx context.Context) {
			calls++
			_ = store.ClearSession(ctx)
		}))
		require.NoError(t, err)

		assert.Error(t, c.Get(ctx, "/admin/posts", nil, nil))
		assert.Equal(t, 1, calls)
		assert.False(t, store.IsAuthenticated(ctx))

		require.NoError(t, c.Get(ctx, "/tags", nil, nil))
		assert.Equal(t, 1, calls)
	})
}
