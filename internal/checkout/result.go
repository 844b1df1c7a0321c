package checkout

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/marketplace-checkout/pkg/db/models"
	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
)

// Result reports the outcome of every seller group, in first-seen seller order.
type Result struct {
	Groups []GroupResult `json:"groups"`
}

// GroupResult holds either the committed order or the failure of one group.
type GroupResult struct {
	SellerID uuid.UUID     `json:"sellerId"`
	Order    *OrderSummary `json:"order,omitempty"`
	Failure  *Failure      `json:"failure,omitempty"`
}

// Committed reports whether the group's order was written.
func (g GroupResult) Committed() bool {
	return g.Order != nil
}

// OrderSummary is the caller-facing view of a committed order.
type OrderSummary struct {
	OrderID       uuid.UUID           `json:"orderId"`
	OrderNumber   string              `json:"orderNumber"`
	SellerID      uuid.UUID           `json:"sellerId"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentID     uuid.UUID           `json:"paymentId"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	PaymentStatus enums.PaymentStatus `json:"paymentStatus"`
	SubtotalCents int64               `json:"subtotalCents"`
	TaxCents      int64               `json:"taxCents"`
	ShippingCents int64               `json:"shippingCents"`
	TotalCents    int64               `json:"totalCents"`
	Items         []OrderItemSummary  `json:"items"`
}

type OrderItemSummary struct {
	ProductID   uuid.UUID  `json:"productId"`
	VariantID   *uuid.UUID `json:"variantId,omitempty"`
	ProductName string     `json:"productName"`
	VariantName *string    `json:"variantName,omitempty"`
	Quantity    int        `json:"quantity"`
	PriceCents  int64      `json:"priceCents"`
	TotalCents  int64      `json:"totalCents"`
}

// Failure explains why a seller group rolled back.
type Failure struct {
	SellerID uuid.UUID      `json:"sellerId"`
	Code     pkgerrors.Code `json:"code"`
	Reason   string         `json:"reason"`
	Details  any            `json:"details,omitempty"`
}

// FailureDetails is attached to checkout errors so committed orders are never hidden.
type FailureDetails struct {
	Orders   []OrderSummary `json:"orders"`
	Failures []Failure      `json:"failures"`
}

// Orders returns the committed orders.
func (r *Result) Orders() []OrderSummary {
	out := []OrderSummary{}
	if r == nil {
		return out
	}
	for _, g := range r.Groups {
		if g.Order != nil {
			out = append(out, *g.Order)
		}
	}
	return out
}

// Failures returns the failed groups.
func (r *Result) Failures() []Failure {
	out := []Failure{}
	if r == nil {
		return out
	}
	for _, g := range r.Groups {
		if g.Failure != nil {
			out = append(out, *g.Failure)
		}
	}
	return out
}

// SummarizeOrder builds the caller view of a persisted order and its payment.
func SummarizeOrder(order *models.Order, payment *models.Payment) OrderSummary {
	summary := OrderSummary{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		SellerID:      order.SellerID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		SubtotalCents: order.SubtotalCents,
		TaxCents:      order.TaxCents,
		ShippingCents: order.ShippingCents,
		TotalCents:    order.TotalCents,
		Items:         make([]OrderItemSummary, len(order.Items)),
	}
	if payment != nil {
		summary.PaymentID = payment.ID
		summary.PaymentMethod = payment.Method
		summary.PaymentStatus = payment.Status
	}
	for i, item := range order.Items {
		summary.Items[i] = OrderItemSummary{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			PriceCents:  item.PriceCents,
			TotalCents:  item.TotalCents,
		}
	}
	return summary
}

func failureFrom(sellerID uuid.UUID, err error) *Failure {
	code := pkgerrors.CodeOf(err)
	meta := pkgerrors.MetadataFor(code)
	failure := &Failure{SellerID: sellerID, Code: code, Reason: meta.PublicMessage}
	if typed := pkgerrors.As(err); typed != nil {
		if typed.Message() != "" && code != pkgerrors.CodeInternal && code != pkgerrors.CodeDependency {
			failure.Reason = typed.Message()
		}
		if meta.DetailsAllowed {
			failure.Details = typed.Details()
		}
	}
	return failure
}
