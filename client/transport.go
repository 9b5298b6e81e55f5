package client

import (
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const RequestIDHeader = "X-Request-ID"

// bearerTransport is the outbound hook. It reads the token at send time, so a
// login or logout takes effect on the next request without rebuilding the client.
type bearerTransport struct {
	base      http.RoundTripper
	tokens    TokenSource
	userAgent string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	if t.tokens != nil {
		if token, ok := t.tokens.Token(req.Context()); ok {
			(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(out)
		}
	}
	if out.Header.Get(RequestIDHeader) == "" {
		out.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if t.userAgent != "" {
		out.Header.Set("User-Agent", t.userAgent)
	}

	return t.base.RoundTrip(out)
}
