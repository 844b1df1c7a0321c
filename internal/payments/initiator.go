// Package payments creates the single payment record attached to each order.
package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/angelmondragon/marketplace-checkout/pkg/db"
	"github.com/angelmondragon/marketplace-checkout/pkg/db/models"
	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
)

const (
	constraintOrderID        = "ux_payments_order_id"
	constraintIdempotencyKey = "ux_payments_idempotency_key"
)

// KeyGenerator produces payment idempotency keys.
type KeyGenerator interface {
	NewKey() string
}

// UUIDKeys issues random UUIDv4 keys.
type UUIDKeys struct{}

func (UUIDKeys) NewKey() string { return uuid.NewString() }

// Initiator creates payments inside the caller's transaction.
type Initiator struct {
	keys KeyGenerator
}

// NewInitiator builds an Initiator; a nil generator falls back to UUIDKeys.
func NewInitiator(keys KeyGenerator) *Initiator {
	if keys == nil {
		keys = UUIDKeys{}
	}
	return &Initiator{keys: keys}
}

// Initiate records the payment for order. Cash on delivery starts in
// cash_on_delivery, every other method in initiated.
func (i *Initiator) Initiate(ctx context.Context, tx *gorm.DB, order *models.Order, method enums.PaymentMethod) (*models.Payment, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if order == nil || order.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "persisted order required")
	}

	method = enums.NormalizePaymentMethod(method.String())
	payment := &models.Payment{
		OrderID:        order.ID,
		AmountCents:    order.TotalCents,
		Method:         method,
		Status:         method.InitialPaymentStatus(),
		IdempotencyKey: i.keys.NewKey(),
	}
	if payment.IdempotencyKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "idempotency key generator returned empty key")
	}

	if err := tx.WithContext(ctx).Create(payment).Error; err != nil {
		if isDuplicate(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodePersistenceConflict, err, "payment already exists").
				WithDetails(map[string]any{"orderId": order.ID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
	}
	return payment, nil
}

func isDuplicate(err error) bool {
	return dbpkg.IsUniqueViolation(err, constraintIdempotencyKey) ||
		dbpkg.IsUniqueViolation(err, constraintOrderID) ||
		dbpkg.IsUniqueViolation(err, "payments.idempotency_key") ||
		dbpkg.IsUniqueViolation(err, "payments.order_id")
}
