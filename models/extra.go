package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExtraService is an optional add-on with its own flat price.
// The catalog is seeded at startup and read-only through the API.
type ExtraService struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string    `json:"description"`
}

func (e *ExtraService) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
