// Package nav resolves in-app navigation. Before a view is entered the guard
// checks whether its route requires a session and, when none is stored,
// sends the user to the login route instead. It performs no network calls.
package nav

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-frontend/errs"
)

// Authenticator is the session capability the guard consults
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// Navigation is the outcome of one navigation request
type Navigation struct {
	Requested  string            // target as asked for
	Route      Route             // route that will be shown
	Params     map[string]string // path parameters of Route
	Query      url.Values        // query of the shown path
	Path       string            // path that will be shown, with query
	Redirected bool              // true when the guard replaced the target
}

type Guard struct {
	mux           *chi.Mux
	login         Route
	auth          Authenticator
	redirectParam string
}

type Option func(*Guard)

// WithRedirectParam makes a denied navigation carry the requested path to
// the login route in the named query parameter
func WithRedirectParam(name string) Option {
	return func(g *Guard) {
		g.redirectParam = name
	}
}

type matchKey struct{}

type match struct {
	route  Route
	params map[string]string
	found  bool
}

// NewGuard builds a guard over a validated route table
func NewGuard(table Table, auth Authenticator, opts ...Option) (*Guard, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	login, _ := table.Find(table.Login)
	g := &Guard{
		mux:   chi.NewRouter(),
		login: login,
		auth:  auth,
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, route := range table.Routes {
		g.mux.Get(route.Path, recordMatch(route))
	}
	return g, nil
}

func recordMatch(route Route) http.HandlerFunc {
	return func(_ http.ResponseWriter, r *http.Request) {
		m, ok := r.Context().Value(matchKey{}).(*match)
		if !ok {
			return
		}
		m.route = route
		m.found = true
		m.params = map[string]string{}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				value := rctx.URLParams.Values[i]
				if unescaped, err := url.PathUnescape(value); err == nil {
					value = unescaped
				}
				m.params[key] = value
			}
		}
	}
}

// LoginRoute returns the route denied navigations are sent to
func (g *Guard) LoginRoute() Route {
	return g.login
}

// RedirectParam is the login query parameter carrying the denied path, or ""
// when redirect targets are not preserved
func (g *Guard) RedirectParam() string {
	return g.redirectParam
}

// Match resolves target to a route without applying the auth rule
func (g *Guard) Match(ctx context.Context, target string) (Route, map[string]string, url.Values, error) {
	u, err := url.Parse(target)
	if err != nil {
		return Route{}, nil, nil, fmt.Errorf("parse navigation target %q: %w", target, err)
	}
	path := trimPath(u.Path)

	m := &match{}
	req, err := http.NewRequestWithContext(context.WithValue(ctx, matchKey{}, m), http.MethodGet, "/", nil)
	if err != nil {
		return Route{}, nil, nil, fmt.Errorf("navigation target %q: %w", target, err)
	}
	// chi routes on RawPath when set, so encoded separators stay inside a segment
	req.URL.Path = path
	req.URL.RawPath = trimPath(u.EscapedPath())
	g.mux.ServeHTTP(discardWriter{}, req)

	if !m.found {
		return Route{}, nil, nil, fmt.Errorf("%s: %w", path, errs.ErrRouteNotFound)
	}
	return m.route, m.params, u.Query(), nil
}

// Navigate applies the guard to target. A route requiring a session, asked
// for while none is stored, resolves to the login route.
func (g *Guard) Navigate(ctx context.Context, target string) (Navigation, error) {
	route, params, query, err := g.Match(ctx, target)
	if err != nil {
		return Navigation{}, err
	}

	if route.RequiresAuth && !g.auth.IsAuthenticated(ctx) {
		nav := Navigation{
			Requested:  target,
			Route:      g.login,
			Params:     map[string]string{},
			Query:      url.Values{},
			Path:       g.login.Path,
			Redirected: true,
		}
		if g.redirectParam != "" {
			nav.Query.Set(g.redirectParam, target)
			nav.Path = g.login.Path + "?" + nav.Query.Encode()
		}
		return nav, nil
	}

	return Navigation{
		Requested: target,
		Route:     route,
		Params:    params,
		Query:     query,
		Path:      target,
	}, nil
}

func trimPath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

type discardWriter struct{}

func (discardWriter) Header() http.Header         { return http.Header{} }
func (discardWriter) Write(b []byte) (int, error) { return len(b), nil }
func (discardWriter) WriteHeader(int)             {}
