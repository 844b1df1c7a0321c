package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
)

// Payment is the single payment record created for an order.
type Payment struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	OrderID        uuid.UUID           `gorm:"column:order_id;type:uuid;not null;uniqueIndex:ux_payments_order_id"`
	AmountCents    int64               `gorm:"column:amount_cents;not null"`
	Method         enums.PaymentMethod `gorm:"column:method;not null"`
	Status         enums.PaymentStatus `gorm:"column:status;not null"`
	IdempotencyKey string              `gorm:"column:idempotency_key;not null;uniqueIndex:ux_payments_idempotency_key"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
