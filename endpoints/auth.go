package endpoints

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rpupo63/blog-frontend/models"
)

// SessionWriter is the part of the session store login and logout need
type SessionWriter interface {
	SetSession(ctx context.Context, token, username string) error
	ClearSession(ctx context.Context) error
}

type Auth struct {
	doer     Doer
	sessions SessionWriter
}

// Login exchanges credentials for a token and stores the resulting session.
// A failed exchange leaves the current session untouched.
func (a Auth) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := a.doer.Do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return models.LoginResponse{}, err
	}
	if err := a.sessions.SetSession(ctx, resp.Token, resp.Username); err != nil {
		return models.LoginResponse{}, fmt.Errorf("store login session: %w", err)
	}
	return resp, nil
}

// Logout clears the stored session. No request is sent.
func (a Auth) Logout(ctx context.Context) error {
	return a.sessions.ClearSession(ctx)
}
