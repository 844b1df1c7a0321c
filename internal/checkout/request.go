package checkout

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
	"github.com/angelmondragon/marketplace-checkout/pkg/types"
)

// LineItem is one requested product (and optional variant) with a quantity.
type LineItem struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// Request is a customer's checkout submission.
type Request struct {
	Items           []LineItem
	ShippingAddress types.Address
	BillingAddress  types.Address
	PaymentMethod   enums.PaymentMethod
}

// ItemDetails names the line item behind a rejection.
type ItemDetails struct {
	ItemIndex int        `json:"itemIndex"`
	ProductID uuid.UUID  `json:"productId,omitempty"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
	SellerID  *uuid.UUID `json:"sellerId,omitempty"`
	Requested int        `json:"requested,omitempty"`
	Available *int       `json:"available,omitempty"`
}

// FieldDetails lists missing request fields.
type FieldDetails struct {
	Fields []string `json:"fields"`
}

// Validate checks the request shape before any catalog lookup.
func (r Request) Validate() error {
	if len(r.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout requires at least one item")
	}
	for i, item := range r.Items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: product id is required", i)).
				WithDetails(ItemDetails{ItemIndex: i})
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity must be greater than zero", i)).
				WithDetails(ItemDetails{ItemIndex: i, ProductID: item.ProductID, VariantID: item.VariantID, Requested: item.Quantity})
		}
		if item.Quantity > MaxLineQuantity {
			return quantityTooLarge(i, ItemDetails{ItemIndex: i, ProductID: item.ProductID, VariantID: item.VariantID, Requested: item.Quantity})
		}
	}

	var missing []string
	for _, field := range r.ShippingAddress.MissingFields() {
		missing = append(missing, "shippingAddress."+field)
	}
	for _, field := range r.BillingAddress.MissingFields() {
		missing = append(missing, "billingAddress."+field)
	}
	if enums.NormalizePaymentMethod(r.PaymentMethod.String()) == "" {
		missing = append(missing, "paymentMethod")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").
			WithDetails(FieldDetails{Fields: missing})
	}
	return nil
}
