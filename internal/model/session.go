package model

import (
	"time"

	"github.com/google/uuid"
)

// Session maps an opaque token to a user until it expires. The token
// is issued by the external auth provider during login; the server
// only stores and resolves it.
type Session struct {
	Token     string    `json:"-" gorm:"size:255;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
