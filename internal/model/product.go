package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog item. Category holds the referenced category's
// name rather than its id, matching the storefront's query surface.
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Price       float64   `json:"price" gorm:"not null;index"`
	Category    string    `json:"category" gorm:"size:255;not null;index"`
	ImageURL    string    `json:"image_url" gorm:"type:text"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Stock bucket cutoffs used by the catalog filter.
const (
	// InStockMin is the smallest quantity counted as "in stock".
	InStockMin = 10
)

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
