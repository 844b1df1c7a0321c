package payloads

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
)

// OrderCreatedEvent is emitted once per committed seller order.
type OrderCreatedEvent struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	CustomerID    uuid.UUID           `json:"customer_id"`
	SellerID      uuid.UUID           `json:"seller_id"`
	SubtotalCents int64               `json:"subtotal_cents"`
	TaxCents      int64               `json:"tax_cents"`
	ShippingCents int64               `json:"shipping_cents"`
	TotalCents    int64               `json:"total_cents"`
	PaymentID     uuid.UUID           `json:"payment_id"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	Items         []OrderItemLine     `json:"items"`
}

// OrderItemLine summarises one purchased line in an order event.
type OrderItemLine struct {
	ProductID  uuid.UUID  `json:"product_id"`
	VariantID  *uuid.UUID `json:"variant_id,omitempty"`
	Quantity   int        `json:"quantity"`
	PriceCents int64      `json:"price_cents"`
}
