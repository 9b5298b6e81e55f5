package database

import (
	"context"
	"errors"

	"github.com/rpupo63/blog-frontend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db}
}

// FindByScope returns the session stored for scope, or nil when there is none
func (r *SessionRepo) FindByScope(ctx context.Context, scope string) (*models.SessionRecord, error) {
	var record models.SessionRecord
	err := r.db.WithContext(ctx).Where("scope = ?", scope).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert writes token and username of a scope in a single statement
func (r *SessionRepo) Upsert(ctx context.Context, record *models.SessionRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "username", "updated_at"}),
	}).Create(record).Error
}

// Delete removes the session of a scope. Deleting a missing row is not an error.
func (r *SessionRepo) Delete(ctx context.Context, scope string) error {
	return r.db.WithContext(ctx).Where("scope = ?", scope).Delete(&models.SessionRecord{}).Error
}
