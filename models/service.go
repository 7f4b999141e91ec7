package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Allowed icon tags for the service catalog
const (
	IconDroplets = "droplets"
	IconSparkles = "sparkles"
	IconCar      = "car"
	IconClock    = "clock"
)

type Service struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	Icon            string    `gorm:"type:varchar(20);default:'droplets'" json:"icon"`
	IsActive        bool      `gorm:"default:true" json:"active"`

	gorm.Model `json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
