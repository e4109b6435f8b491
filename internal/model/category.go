package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products. Names are unique ignoring case; the
// service layer enforces that through repository existence checks, so
// the column itself carries no collation-dependent constraint.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
