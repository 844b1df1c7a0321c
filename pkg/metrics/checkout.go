package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeCommitted = "committed"
	OutcomeFailed    = "failed"
	OutcomePartial   = "partial"
)

// CheckoutMetrics records checkout and per-seller order outcomes.
type CheckoutMetrics struct {
	duration           *prometheus.HistogramVec
	groups             *prometheus.CounterVec
	orderNumberRetries prometheus.Counter
	inventoryConflicts prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout executions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	groups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_seller_groups_total",
		Help: "Seller groups processed by checkout, by outcome and failure reason.",
	}, []string{"outcome", "reason"})
	retries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_order_number_retries_total",
		Help: "Order number collisions that triggered a regeneration.",
	})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_inventory_conflicts_total",
		Help: "Inventory decrements rejected for insufficient stock.",
	})
	reg.MustRegister(duration, groups, retries, conflicts)
	return &CheckoutMetrics{
		duration:           duration,
		groups:             groups,
		orderNumberRetries: retries,
		inventoryConflicts: conflicts,
	}
}

// ObserveCheckout records the duration of one checkout execution.
func (m *CheckoutMetrics) ObserveCheckout(outcome string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncGroupCommitted counts a seller group whose order committed.
func (m *CheckoutMetrics) IncGroupCommitted() {
	if m == nil || m.groups == nil {
		return
	}
	m.groups.WithLabelValues(OutcomeCommitted, "none").Inc()
}

// IncGroupFailed counts a seller group that rolled back.
func (m *CheckoutMetrics) IncGroupFailed(reason string) {
	if m == nil || m.groups == nil {
		return
	}
	m.groups.WithLabelValues(OutcomeFailed, normalizeLabel(reason)).Inc()
}

func (m *CheckoutMetrics) IncOrderNumberRetry() {
	if m == nil || m.orderNumberRetries == nil {
		return
	}
	m.orderNumberRetries.Inc()
}

func (m *CheckoutMetrics) IncInventoryConflict() {
	if m == nil || m.inventoryConflicts == nil {
		return
	}
	m.inventoryConflicts.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
