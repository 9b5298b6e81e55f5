// Package endpoints holds one typed function per content API operation.
// Wrappers map parameters to a single request and decode the declared shape.
package endpoints

import (
	"context"
	"net/url"
)

// Doer sends one JSON request; *client.Client implements it
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// API groups the public, auth and admin wrappers over one Doer
type API struct {
	Public Public
	Admin  Admin
	Auth   Auth
}

func New(doer Doer, sessions SessionWriter) API {
	return API{
		Public: Public{doer: doer},
		Admin:  Admin{doer: doer},
		Auth:   Auth{doer: doer, sessions: sessions},
	}
}
