package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SaleMetrics records counters for the checkout flow and catalog refreshes.
type SaleMetrics struct {
	checkoutDuration *prometheus.HistogramVec
	checkoutOutcome  *prometheus.CounterVec
	cartRejections   *prometheus.CounterVec
	catalogRefresh   *prometheus.CounterVec
}

// NewSaleMetrics registers the sale metrics on the provided registerer.
func NewSaleMetrics(reg prometheus.Registerer) *SaleMetrics {
	if reg == nil {
		return &SaleMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	outcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_rejections_total",
		Help: "Cart mutations refused by local stock rules.",
	}, []string{"reason"})
	refresh := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_refresh_total",
		Help: "Catalog snapshot refreshes by result.",
	}, []string{"result"})
	reg.MustRegister(duration, outcome, rejections, refresh)
	return &SaleMetrics{
		checkoutDuration: duration,
		checkoutOutcome:  outcome,
		cartRejections:   rejections,
		catalogRefresh:   refresh,
	}
}

// ObserveCheckout records one checkout attempt and its duration.
func (m *SaleMetrics) ObserveCheckout(outcome string, duration time.Duration) {
	if m == nil || m.checkoutOutcome == nil {
		return
	}
	label := normalizeLabel(outcome)
	m.checkoutOutcome.WithLabelValues(label).Inc()
	m.checkoutDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// IncCartRejection counts a refused cart mutation.
func (m *SaleMetrics) IncCartRejection(reason string) {
	if m == nil || m.cartRejections == nil {
		return
	}
	m.cartRejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncCatalogRefresh counts a snapshot refresh.
func (m *SaleMetrics) IncCatalogRefresh(result string) {
	if m == nil || m.catalogRefresh == nil {
		return
	}
	m.catalogRefresh.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
