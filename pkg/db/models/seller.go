package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seller is the marketplace vendor that owns products and receives orders.
type Seller struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BusinessName string    `gorm:"column:business_name;not null"`
	IsActive     bool      `gorm:"column:is_active;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *Seller) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
