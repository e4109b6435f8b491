package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles form a strict ordering: user < admin < owner. Exactly one
// owner exists (the first registrant) and the owner role is never
// reassigned through the admin endpoints.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// User represents an authenticated storefront user. No password hash
// lives here: authentication is delegated to the external auth
// provider, which hands back a profile and an opaque session token.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Picture   string    `json:"picture" gorm:"type:text"`
	Role      string    `json:"role" gorm:"size:50;not null;default:'user';index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
