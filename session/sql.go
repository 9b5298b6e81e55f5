package session

import (
	"context"
	"time"

	"github.com/rpupo63/blog-frontend/database"
	"github.com/rpupo63/blog-frontend/models"
)

// SQLBackend keeps one row per scope in the client_sessions table
type SQLBackend struct {
	repo  *database.SessionRepo
	scope string
}

func NewSQLBackend(repo *database.SessionRepo, scope string) *SQLBackend {
	return &SQLBackend{repo: repo, scope: scope}
}

func (b *SQLBackend) Load(ctx context.Context) (Session, error) {
	record, err := b.repo.FindByScope(ctx, b.scope)
	if err != nil || record == nil {
		return Session{}, err
	}
	return Session{Token: record.Token, Username: record.Username}, nil
}

func (b *SQLBackend) Save(ctx context.Context, s Session) error {
	return b.repo.Upsert(ctx, &models.SessionRecord{
		Scope:     b.scope,
		Token:     s.Token,
		Username:  s.Username,
		UpdatedAt: time.Now().UTC(),
	})
}

func (b *SQLBackend) Delete(ctx context.Context) error {
	return b.repo.Delete(ctx, b.scope)
}
