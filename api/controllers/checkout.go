package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/marketplace-checkout/api/middleware"
	"github.com/angelmondragon/marketplace-checkout/api/responses"
	"github.com/angelmondragon/marketplace-checkout/api/validators"
	checkoutsvc "github.com/angelmondragon/marketplace-checkout/internal/checkout"
	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
	"github.com/angelmondragon/marketplace-checkout/pkg/logger"
	"github.com/angelmondragon/marketplace-checkout/pkg/types"
)

const maxAddressFieldLen = 255

// Checkout submits the customer's cart. Every seller group is reported: 201
// when all committed, 207 when some committed, the error envelope otherwise.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer required"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Execute(r.Context(), customerID, payload.toInput())
		switch {
		case err == nil:
			responses.WriteSuccessStatus(w, http.StatusCreated, newCheckoutResponse(result))
		case pkgerrors.IsCode(err, pkgerrors.CodePartialCheckout) && result != nil:
			if logg != nil {
				logg.Warn(logg.WithField(r.Context(), "failed_groups", len(result.Failures())), "checkout.partial")
			}
			responses.WriteSuccessStatus(w, http.StatusMultiStatus, newCheckoutResponse(result))
		default:
			responses.WriteError(r.Context(), logg, w, err)
		}
	}
}

type checkoutRequest struct {
	Items           []checkoutItem  `json:"items" validate:"required,min=1,dive"`
	ShippingAddress checkoutAddress `json:"shippingAddress"`
	BillingAddress  checkoutAddress `json:"billingAddress"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required"`
}

type checkoutItem struct {
	ProductID uuid.UUID  `json:"productId" validate:"required"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
	Quantity  int        `json:"quantity" validate:"gt=0,max=10000"`
}

// checkoutAddress is checked by the service so missing fields are reported
// with their shippingAddress/billingAddress prefix.
type checkoutAddress struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address1  string  `json:"address1"`
	Address2  *string `json:"address2,omitempty"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Zip       string  `json:"zip"`
	Country   string  `json:"country"`
	Phone     *string `json:"phone,omitempty"`
}

func (r checkoutRequest) toInput() checkoutsvc.Request {
	items := make([]checkoutsvc.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = checkoutsvc.LineItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		}
	}
	return checkoutsvc.Request{
		Items:           items,
		ShippingAddress: r.ShippingAddress.toAddress(),
		BillingAddress:  r.BillingAddress.toAddress(),
		PaymentMethod:   enums.NormalizePaymentMethod(r.PaymentMethod),
	}
}

func (a checkoutAddress) toAddress() types.Address {
	return types.Address{
		FirstName: validators.SanitizeString(a.FirstName, maxAddressFieldLen),
		LastName:  validators.SanitizeString(a.LastName, maxAddressFieldLen),
		Address1:  validators.SanitizeString(a.Address1, maxAddressFieldLen),
		Address2:  sanitizeOptional(a.Address2),
		City:      validators.SanitizeString(a.City, maxAddressFieldLen),
		State:     validators.SanitizeString(a.State, maxAddressFieldLen),
		Zip:       validators.SanitizeString(a.Zip, maxAddressFieldLen),
		Country:   validators.SanitizeString(a.Country, maxAddressFieldLen),
		Phone:     sanitizeOptional(a.Phone),
	}
}

func sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	clean := validators.SanitizeString(*value, maxAddressFieldLen)
	return &clean
}

type checkoutResponse struct {
	Orders   []checkoutsvc.OrderSummary `json:"orders"`
	Failures []checkoutsvc.Failure      `json:"failures"`
}

func newCheckoutResponse(result *checkoutsvc.Result) checkoutResponse {
	resp := checkoutResponse{
		Orders:   []checkoutsvc.OrderSummary{},
		Failures: []checkoutsvc.Failure{},
	}
	if result == nil {
		return resp
	}
	if orders := result.Orders(); len(orders) > 0 {
		resp.Orders = orders
	}
	if failures := result.Failures(); len(failures) > 0 {
		resp.Failures = failures
	}
	return resp
}
