package models

import "time"

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SessionRecord is the persisted form of a session in the SQL session backend.
// Scope is the API origin the session belongs to.
type SessionRecord struct {
	Scope     string    `json:"scope" db:"scope" gorm:"type:text;primaryKey;not null"`
	Token     string    `json:"-" db:"token" gorm:"type:text;not null"`
	Username  string    `json:"username" db:"username" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

// TableName pins the table name regardless of naming strategy
func (SessionRecord) TableName() string {
	return "client_sessions"
}
