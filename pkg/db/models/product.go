package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
)

// Product is a catalog listing owned by one seller.
type Product struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	SellerID       uuid.UUID           `gorm:"column:seller_id;type:uuid;not null;index"`
	Name           string              `gorm:"column:name;not null"`
	Status         enums.ProductStatus `gorm:"column:status;not null"`
	IsActive       bool                `gorm:"column:is_active;not null"`
	BasePriceCents int64               `gorm:"column:base_price_cents;not null;check:chk_products_base_price,base_price_cents >= 0"`
	Variants       []ProductVariant    `gorm:"foreignKey:ProductID;references:ID"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// IsPurchasable reports whether the product may be sold right now.
func (p *Product) IsPurchasable() bool {
	return p != nil && p.IsActive && p.Status == enums.ProductStatusApproved
}
