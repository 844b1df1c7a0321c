// Package checkout turns a multi-seller cart into one committed order per seller.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketplace-checkout/internal/inventory"
	"github.com/angelmondragon/marketplace-checkout/internal/orders"
	"github.com/angelmondragon/marketplace-checkout/pkg/db/models"
	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
	"github.com/angelmondragon/marketplace-checkout/pkg/logger"
	"github.com/angelmondragon/marketplace-checkout/pkg/metrics"
	"github.com/angelmondragon/marketplace-checkout/pkg/outbox"
	"github.com/angelmondragon/marketplace-checkout/pkg/outbox/payloads"
)

const defaultMaxParallel = 4

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartValidator interface {
	Validate(ctx context.Context, items []LineItem) ([]ResolvedLineItem, error)
}

type orderPersister interface {
	Persist(ctx context.Context, tx *gorm.DB, draft orders.Draft) (*models.Order, error)
}

type paymentInitiator interface {
	Initiate(ctx context.Context, tx *gorm.DB, order *models.Order, method enums.PaymentMethod) (*models.Payment, error)
}

type inventoryAdjuster interface {
	DecrementAll(ctx context.Context, tx *gorm.DB, lines []inventory.Line) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type checkoutMetrics interface {
	ObserveCheckout(outcome string, duration time.Duration)
	IncGroupCommitted()
	IncGroupFailed(reason string)
}

// Service executes checkout orchestration.
type Service interface {
	Execute(ctx context.Context, customerID uuid.UUID, req Request) (*Result, error)
}

// Deps wires the collaborators of the checkout service.
type Deps struct {
	Tx          txRunner
	Validator   cartValidator
	Pricer      Pricer
	Orders      orderPersister
	Payments    paymentInitiator
	Inventory   inventoryAdjuster
	Outbox      outboxPublisher
	Metrics     checkoutMetrics
	Logger      *logger.Logger
	MaxParallel int
}

type service struct {
	tx          txRunner
	validator   cartValidator
	pricer      Pricer
	orders      orderPersister
	payments    paymentInitiator
	inventory   inventoryAdjuster
	outbox      outboxPublisher
	metrics     checkoutMetrics
	logg        *logger.Logger
	maxParallel int
}

// NewService builds the checkout service.
func NewService(deps Deps) (Service, error) {
	if deps.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if deps.Validator == nil {
		return nil, fmt.Errorf("cart validator required")
	}
	if !deps.Pricer.ready {
		return nil, fmt.Errorf("pricer required")
	}
	if deps.Orders == nil {
		return nil, fmt.Errorf("order persister required")
	}
	if deps.Payments == nil {
		return nil, fmt.Errorf("payment initiator required")
	}
	if deps.Inventory == nil {
		return nil, fmt.Errorf("inventory adjuster required")
	}
	if deps.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	maxParallel := deps.MaxParallel
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}
	var m checkoutMetrics = deps.Metrics
	if m == nil {
		m = (*metrics.CheckoutMetrics)(nil)
	}
	return &service{
		tx:          deps.Tx,
		validator:   deps.Validator,
		pricer:      deps.Pricer,
		orders:      deps.Orders,
		payments:    deps.Payments,
		inventory:   deps.Inventory,
		outbox:      deps.Outbox,
		metrics:     m,
		logg:        deps.Logger,
		maxParallel: maxParallel,
	}, nil
}

// Execute validates the whole cart, then commits each seller group in its own
// transaction. The returned Result is populated whenever validation passed,
// including when the error reports a partial or total failure.
func (s *service) Execute(ctx context.Context, customerID uuid.UUID, req Request) (*Result, error) {
	started := time.Now()
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.PaymentMethod = enums.NormalizePaymentMethod(req.PaymentMethod.String())
	if s.logg != nil {
		ctx = s.logg.WithCustomerID(ctx, customerID.String())
	}

	resolved, err := s.validator.Validate(ctx, req.Items)
	if err != nil {
		s.metrics.ObserveCheckout(metrics.OutcomeFailed, time.Since(started))
		return nil, err
	}

	groups := GroupBySeller(resolved)
	for i := range groups {
		if err := s.pricer.Price(&groups[i]); err != nil {
			s.metrics.ObserveCheckout(metrics.OutcomeFailed, time.Since(started))
			return nil, err
		}
	}

	results := make([]GroupResult, len(groups))
	var g errgroup.Group
	g.SetLimit(s.maxParallel)
	for i := range groups {
		g.Go(func() error {
			results[i] = s.commitGroup(ctx, customerID, req, groups[i])
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{Groups: results}
	outcome, err := summarize(result)
	s.metrics.ObserveCheckout(outcome, time.Since(started))
	return result, err
}

func (s *service) commitGroup(ctx context.Context, customerID uuid.UUID, req Request, group SellerOrderGroup) GroupResult {
	if s.logg != nil {
		ctx = s.logg.WithSellerID(ctx, group.SellerID.String())
	}

	var (
		order   *models.Order
		payment *models.Payment
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = s.orders.Persist(ctx, tx, draftFor(customerID, req, group))
		if err != nil {
			return err
		}
		payment, err = s.payments.Initiate(ctx, tx, order, req.PaymentMethod)
		if err != nil {
			return err
		}
		if err := s.inventory.DecrementAll(ctx, tx, inventoryLines(group)); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, orderCreatedEvent(customerID, order, payment))
	})
	if err != nil {
		failure := failureFrom(group.SellerID, err)
		s.metrics.IncGroupFailed(string(failure.Code))
		if s.logg != nil {
			logCtx := s.logg.WithField(ctx, "reason", failure.Code)
			s.logg.Warn(logCtx, "checkout.group.failed")
		}
		return GroupResult{SellerID: group.SellerID, Failure: failure}
	}

	summary := SummarizeOrder(order, payment)
	s.metrics.IncGroupCommitted()
	if s.logg != nil {
		logCtx := s.logg.WithFields(s.logg.WithOrderID(ctx, order.ID.String()), map[string]any{
			"order_number": order.OrderNumber,
			"total_cents":  order.TotalCents,
		})
		s.logg.Info(logCtx, "checkout.group.committed")
	}
	return GroupResult{SellerID: group.SellerID, Order: &summary}
}

// summarize maps group outcomes onto the checkout error contract.
func summarize(result *Result) (string, error) {
	failures := result.Failures()
	if len(failures) == 0 {
		return metrics.OutcomeCommitted, nil
	}
	details := FailureDetails{Orders: result.Orders(), Failures: failures}
	if len(details.Orders) > 0 {
		return metrics.OutcomePartial, pkgerrors.New(pkgerrors.CodePartialCheckout,
			fmt.Sprintf("%d of %d seller orders failed", len(failures), len(result.Groups))).
			WithDetails(details)
	}
	first := failures[0]
	return metrics.OutcomeFailed, pkgerrors.New(first.Code, first.Reason).WithDetails(details)
}

func draftFor(customerID uuid.UUID, req Request, group SellerOrderGroup) orders.Draft {
	items := make([]orders.DraftItem, len(group.Items))
	for i, item := range group.Items {
		items[i] = orders.DraftItem{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			PriceCents:  item.UnitPriceCents,
			TotalCents:  item.LineTotalCents,
		}
	}
	return orders.Draft{
		CustomerID:      customerID,
		SellerID:        group.SellerID,
		PaymentStatus:   req.PaymentMethod.InitialPaymentStatus(),
		SubtotalCents:   group.SubtotalCents,
		TaxCents:        group.TaxCents,
		ShippingCents:   group.ShippingCents,
		TotalCents:      group.TotalCents,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Items:           items,
	}
}

func inventoryLines(group SellerOrderGroup) []inventory.Line {
	lines := make([]inventory.Line, 0, len(group.Items))
	for _, item := range group.Items {
		if item.VariantID == nil {
			continue
		}
		lines = append(lines, inventory.Line{
			ProductID: item.ProductID,
			VariantID: *item.VariantID,
			Quantity:  item.Quantity,
		})
	}
	return lines
}

func orderCreatedEvent(customerID uuid.UUID, order *models.Order, payment *models.Payment) outbox.DomainEvent {
	items := make([]payloads.OrderItemLine, len(order.Items))
	for i, item := range order.Items {
		items[i] = payloads.OrderItemLine{
			ProductID:  item.ProductID,
			VariantID:  item.VariantID,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		}
	}
	return outbox.DomainEvent{
		EventType:     enums.EventOrderCreated,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Actor:         &outbox.ActorRef{CustomerID: customerID},
		Data: payloads.OrderCreatedEvent{
			OrderID:       order.ID,
			OrderNumber:   order.OrderNumber,
			CustomerID:    customerID,
			SellerID:      order.SellerID,
			SubtotalCents: order.SubtotalCents,
			TaxCents:      order.TaxCents,
			ShippingCents: order.ShippingCents,
			TotalCents:    order.TotalCents,
			PaymentID:     payment.ID,
			PaymentMethod: payment.Method,
			PaymentStatus: payment.Status,
			Items:         items,
		},
	}
}
