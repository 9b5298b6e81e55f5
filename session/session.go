// Package session persists the signed-in identity (token and username) of
// the blog client. Token and username are always written and cleared
// together through a single backend call.
package session

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rpupo63/blog-frontend/errs"
)

// Session is the persisted identity. Both fields are set or both are empty.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Empty reports whether s carries no identity
func (s Session) Empty() bool {
	return s.Token == "" || s.Username == ""
}

// Backend is the persistence medium of a Store
type Backend interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context) error
}

// Store is the session store shared by the HTTP client and the navigation guard
type Store struct {
	backend Backend
}

// New returns a Store over backend. A nil backend means an in-memory one.
func New(backend Backend) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Store{backend: backend}
}

// SetSession replaces any prior session with token and username
func (s *Store) SetSession(ctx context.Context, token, username string) error {
	if token == "" {
		return errs.ErrEmptyToken
	}
	if username == "" {
		return errs.ErrEmptyUsername
	}
	if err := s.backend.Save(ctx, Session{Token: token, Username: username}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ClearSession removes the session. Clearing an empty store is a no-op.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.backend.Delete(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the stored session. A half-written record reads as empty.
func (s *Store) Current(ctx context.Context) (Session, error) {
	current, err := s.backend.Load(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if current.Empty() {
		return Session{}, nil
	}
	return current, nil
}

// IsAuthenticated is true iff a non-empty token is stored.
// An unreadable backend counts as signed out.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// Token returns the stored bearer token
func (s *Store) Token(ctx context.Context) (string, bool) {
	current, err := s.Current(ctx)
	if err != nil || current.Token == "" {
		return "", false
	}
	return current.Token, true
}

// CurrentUsername returns the stored username
func (s *Store) CurrentUsername(ctx context.Context) (string, bool) {
	current, err := s.Current(ctx)
	if err != nil || current.Username == "" {
		return "", false
	}
	return current.Username, true
}

// ScopeKey normalizes an API origin into the key sessions are stored under
func ScopeKey(origin string) string {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimRight(origin, "/"))
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}
