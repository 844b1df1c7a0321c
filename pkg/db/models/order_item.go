package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem snapshots the price and quantity of one purchased line.
type OrderItem struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"column:order_id;type:uuid;not null;uniqueIndex:ux_order_items_order_line,priority:1"`
	LineNumber  int        `gorm:"column:line_number;not null;uniqueIndex:ux_order_items_order_line,priority:2"`
	ProductID   uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	VariantID   *uuid.UUID `gorm:"column:variant_id;type:uuid"`
	ProductName string     `gorm:"column:product_name;not null"`
	VariantName *string    `gorm:"column:variant_name"`
	Quantity    int        `gorm:"column:quantity;not null;check:chk_order_items_quantity,quantity > 0"`
	PriceCents  int64      `gorm:"column:price_cents;not null"`
	TotalCents  int64      `gorm:"column:total_cents;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
