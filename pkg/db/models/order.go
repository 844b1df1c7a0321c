package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
	"github.com/angelmondragon/marketplace-checkout/pkg/types"
)

// Order is the persisted purchase for a single seller within a checkout.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	OrderNumber     string              `gorm:"column:order_number;not null;uniqueIndex:ux_orders_order_number"`
	CustomerID      uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	SellerID        uuid.UUID           `gorm:"column:seller_id;type:uuid;not null;index"`
	Status          enums.OrderStatus   `gorm:"column:status;not null"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;not null"`
	SubtotalCents   int64               `gorm:"column:subtotal_cents;not null"`
	TaxCents        int64               `gorm:"column:tax_cents;not null"`
	ShippingCents   int64               `gorm:"column:shipping_cents;not null"`
	TotalCents      int64               `gorm:"column:total_cents;not null;check:chk_orders_total,total_cents = subtotal_cents + tax_cents + shipping_cents"`
	ShippingAddress types.Address       `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress  types.Address       `gorm:"embedded;embeddedPrefix:billing_"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;references:ID"`
	Payment         *Payment            `gorm:"foreignKey:OrderID;references:ID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}
