// Package orders persists seller orders and reads them back for customers.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/marketplace-checkout/internal/orders/ordernumber"
	dbpkg "github.com/angelmondragon/marketplace-checkout/pkg/db"
	"github.com/angelmondragon/marketplace-checkout/pkg/db/models"
	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
	"github.com/angelmondragon/marketplace-checkout/pkg/types"
)

const constraintOrderNumber = "ux_orders_order_number"

type retryRecorder interface {
	IncOrderNumberRetry()
}

// Draft is a priced seller order that has not been written yet.
type Draft struct {
	CustomerID      uuid.UUID
	SellerID        uuid.UUID
	PaymentStatus   enums.PaymentStatus
	SubtotalCents   int64
	TaxCents        int64
	ShippingCents   int64
	TotalCents      int64
	ShippingAddress types.Address
	BillingAddress  types.Address
	Items           []DraftItem
}

// DraftItem snapshots one line at its checkout-time price.
type DraftItem struct {
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	VariantName *string
	Quantity    int
	PriceCents  int64
	TotalCents  int64
}

// Persister writes an order header and its items inside the caller's transaction.
type Persister struct {
	numbers  ordernumber.Generator
	attempts int
	retries  retryRecorder
	now      func() time.Time
}

// NewPersister builds a Persister that tries up to attempts order numbers.
func NewPersister(numbers ordernumber.Generator, attempts int, retries retryRecorder) (*Persister, error) {
	if numbers == nil {
		return nil, fmt.Errorf("order number generator required")
	}
	if attempts <= 0 {
		return nil, fmt.Errorf("order number attempts must be positive")
	}
	return &Persister{
		numbers:  numbers,
		attempts: attempts,
		retries:  retries,
		now:      time.Now,
	}, nil
}

// Persist inserts the draft. Each attempt runs behind a savepoint so an order
// number collision only discards that attempt.
func (p *Persister) Persist(ctx context.Context, tx *gorm.DB, draft Draft) (*models.Order, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if err := draft.check(); err != nil {
		return nil, err
	}

	tx = tx.WithContext(ctx)
	for attempt := 1; attempt <= p.attempts; attempt++ {
		number, err := p.numbers.Next(p.now())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
		}

		savepoint := fmt.Sprintf("order_attempt_%d", attempt)
		if err := tx.SavePoint(savepoint).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create savepoint")
		}

		order := draft.toModel(number)
		err = tx.Omit(clause.Associations).Create(order).Error
		if err == nil {
			items := draft.itemModels(order.ID)
			if err := tx.Create(&items).Error; err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
			}
			order.Items = items
			return order, nil
		}

		if !isOrderNumberConflict(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if rbErr := tx.RollbackTo(savepoint).Error; rbErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, rbErr, "rollback order savepoint")
		}
		if p.retries != nil {
			p.retries.IncOrderNumberRetry()
		}
	}

	return nil, pkgerrors.New(pkgerrors.CodePersistenceConflict, "could not allocate a unique order number").
		WithDetails(map[string]any{"sellerId": draft.SellerID, "attempts": p.attempts})
}

func isOrderNumberConflict(err error) bool {
	return dbpkg.IsUniqueViolation(err, constraintOrderNumber) ||
		dbpkg.IsUniqueViolation(err, "orders.order_number")
}

func (d Draft) check() error {
	if len(d.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	var subtotal int64
	for _, item := range d.Items {
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive").
				WithDetails(map[string]any{"productId": item.ProductID, "quantity": item.Quantity})
		}
		if item.TotalCents != item.PriceCents*int64(item.Quantity) {
			return pkgerrors.New(pkgerrors.CodeInternal, "item total does not match price")
		}
		subtotal += item.TotalCents
	}
	if subtotal != d.SubtotalCents {
		return pkgerrors.New(pkgerrors.CodeInternal, "subtotal does not match items")
	}
	if d.TotalCents != d.SubtotalCents+d.TaxCents+d.ShippingCents {
		return pkgerrors.New(pkgerrors.CodeInternal, "total does not match components")
	}
	return nil
}

func (d Draft) toModel(number string) *models.Order {
	status := d.PaymentStatus
	if status == "" {
		status = enums.PaymentStatusInitiated
	}
	return &models.Order{
		OrderNumber:     number,
		CustomerID:      d.CustomerID,
		SellerID:        d.SellerID,
		Status:          enums.OrderStatusCreated,
		PaymentStatus:   status,
		SubtotalCents:   d.SubtotalCents,
		TaxCents:        d.TaxCents,
		ShippingCents:   d.ShippingCents,
		TotalCents:      d.TotalCents,
		ShippingAddress: d.ShippingAddress.Normalized(),
		BillingAddress:  d.BillingAddress.Normalized(),
	}
}

func (d Draft) itemModels(orderID uuid.UUID) []models.OrderItem {
	items := make([]models.OrderItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = models.OrderItem{
			OrderID:     orderID,
			LineNumber:  i + 1,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			PriceCents:  item.PriceCents,
			TotalCents:  item.TotalCents,
		}
	}
	return items
}
