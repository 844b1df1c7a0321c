package orders

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/marketplace-checkout/api/middleware"
	"github.com/angelmondragon/marketplace-checkout/api/responses"
	"github.com/angelmondragon/marketplace-checkout/api/validators"
	checkoutsvc "github.com/angelmondragon/marketplace-checkout/internal/checkout"
	internalorders "github.com/angelmondragon/marketplace-checkout/internal/orders"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
	"github.com/angelmondragon/marketplace-checkout/pkg/logger"
	"github.com/angelmondragon/marketplace-checkout/pkg/pagination"
	"github.com/angelmondragon/marketplace-checkout/pkg/types"
)

type orderDetail struct {
	checkoutsvc.OrderSummary
	CustomerID      uuid.UUID     `json:"customerId"`
	ShippingAddress types.Address `json:"shippingAddress"`
	BillingAddress  types.Address `json:"billingAddress"`
}

type listedOrder struct {
	checkoutsvc.OrderSummary
	CreatedAt time.Time `json:"createdAt"`
}

type orderListResponse struct {
	Orders     []listedOrder `json:"orders"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

// List returns the caller's orders newest first, one cursor page at a time.
func List(repo internalorders.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders repository unavailable"))
			return
		}

		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer required"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		list, err := repo.ListForCustomer(r.Context(), customerID, pagination.Params{Limit: limit, Cursor: cursor})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := orderListResponse{Orders: make([]listedOrder, 0, len(list.Orders)), NextCursor: list.NextCursor}
		for i := range list.Orders {
			order := &list.Orders[i]
			resp.Orders = append(resp.Orders, listedOrder{
				OrderSummary: checkoutsvc.SummarizeOrder(order, order.Payment),
				CreatedAt:    order.CreatedAt,
			})
		}
		responses.WriteSuccess(w, resp)
	}
}

// Detail returns one of the caller's orders with its items and payment.
func Detail(repo internalorders.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders repository unavailable"))
			return
		}

		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer required"))
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := repo.FindForCustomer(r.Context(), customerID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orderDetail{
			OrderSummary:    checkoutsvc.SummarizeOrder(order, order.Payment),
			CustomerID:      order.CustomerID,
			ShippingAddress: order.ShippingAddress,
			BillingAddress:  order.BillingAddress,
		})
	}
}
