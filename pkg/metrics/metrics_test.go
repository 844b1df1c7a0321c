package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCheckoutMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.ObserveCheckout(OutcomePartial, 120*time.Millisecond)
	m.IncGroupCommitted()
	m.IncGroupFailed("INSUFFICIENT_INVENTORY")
	m.IncGroupFailed("INSUFFICIENT_INVENTORY")
	m.IncOrderNumberRetry()
	m.IncInventoryConflict()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "checkout_seller_groups_total", map[string]string{"outcome": OutcomeFailed, "reason": "INSUFFICIENT_INVENTORY"}); err != nil {
		t.Fatalf("fetch failed groups: %v", err)
	} else if got != 2 {
		t.Fatalf("expected failed=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "checkout_seller_groups_total", map[string]string{"outcome": OutcomeCommitted}); err != nil {
		t.Fatalf("fetch committed groups: %v", err)
	} else if got != 1 {
		t.Fatalf("expected committed=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "checkout_order_number_retries_total", nil); err != nil || got != 1 {
		t.Fatalf("expected one retry, got %f (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "checkout_inventory_conflicts_total", nil); err != nil || got != 1 {
		t.Fatalf("expected one conflict, got %f (%v)", got, err)
	}

	if got, err := fetchHistogramSum(mfs, "checkout_duration_seconds", map[string]string{"outcome": OutcomePartial}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestOutboxMetricsCountsByEventType(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOutboxMetrics(reg)

	m.ObserveBatch(10 * time.Millisecond)
	m.IncPublished("order_created")
	m.IncFailed("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "outbox_events_published_total", map[string]string{"event_type": "order_created"}); err != nil || got != 1 {
		t.Fatalf("expected published=1, got %f (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "outbox_events_failed_total", map[string]string{"event_type": "unknown"}); err != nil || got != 1 {
		t.Fatalf("expected failed=1 under unknown label, got %f (%v)", got, err)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var checkout *CheckoutMetrics
	checkout.ObserveCheckout(OutcomeCommitted, time.Second)
	checkout.IncGroupCommitted()
	checkout.IncGroupFailed("x")
	checkout.IncOrderNumberRetry()
	checkout.IncInventoryConflict()

	unregistered := NewCheckoutMetrics(nil)
	unregistered.IncGroupCommitted()

	var outbox *OutboxMetrics
	outbox.ObserveBatch(time.Second)
	outbox.IncPublished("x")
	NewOutboxMetrics(nil).IncFailed("x")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	for name, value := range want {
		found := false
		for _, label := range pairs {
			if label.GetName() == name && label.GetValue() == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
