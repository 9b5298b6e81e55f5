// Package client sends requests to the blog content API. Every request goes
// through a fixed base path, a fixed timeout and an outbound hook that
// attaches the bearer token of the injected session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rpupo63/blog-frontend/errs"
)

const (
	DefaultBasePath = "/api"
	DefaultTimeout  = 10 * time.Second
)

// TokenSource is the session capability the client reads the bearer token from
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Client is the shared request sender. It is safe for concurrent use.
type Client struct {
	httpClient     *http.Client
	baseURL        *url.URL
	onUnauthorized func(ctx context.Context)
}

type options struct {
	basePath       string
	timeout        time.Duration
	transport      http.RoundTripper
	userAgent      string
	onUnauthorized func(ctx context.Context)
}

type Option func(*options)

// WithBasePath replaces the /api prefix
func WithBasePath(path string) Option {
	return func(o *options) {
		o.basePath = path
	}
}

// WithTimeout replaces the 10s request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithTransport sets the round tripper the bearer hook wraps
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithUnauthorizedHook installs a callback run on every 401 response before
// the error is returned to the caller. Without it a 401 only surfaces as an error.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(o *options) {
		o.onUnauthorized = fn
	}
}

// New creates a client for the API served at origin
func New(origin string, tokens TokenSource, opts ...Option) (*Client, error) {
	o := options{
		basePath:  DefaultBasePath,
		timeout:   DefaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := url.Parse(strings.TrimRight(origin, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse origin %q: %w", origin, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("origin %q must be an absolute URL", origin)
	}
	base.Path = base.Path + "/" + strings.Trim(o.basePath, "/")

	return &Client{
		httpClient: &http.Client{
			Timeout: o.timeout,
			Transport: &bearerTransport{
				base:      o.transport,
				tokens:    tokens,
				userAgent: o.userAgent,
			},
		},
		baseURL:        base,
		onUnauthorized: o.onUnauthorized,
	}, nil
}

// BaseURL returns the origin joined with the base path
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Do sends one request. A non-nil body is sent as JSON; a 2xx response body is
// decoded into out when out is non-nil. No retries are attempted.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.resolve(path, query)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &errs.TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errs.TransportError{Method: method, URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return errs.NewResponseError(method, target, resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = query.Encode()
	return u.String()
}
