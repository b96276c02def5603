// Package metrics exposes Prometheus instruments for the order ledger and the
// HTTP layer.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerMetrics is notified by the order ledger after each committed change.
type LedgerMetrics interface {
	OrderCreated(method string, total float64)
	OrderStatusChanged(from, to string)
	OrderDeleted()
}

type ledgerMetrics struct {
	ordersCreated *prometheus.CounterVec
	orderRevenue  *prometheus.CounterVec
	orderTotals   prometheus.Histogram
	statusChanges *prometheus.CounterVec
	ordersDeleted prometheus.Counter
}

func NewLedgerMetrics(registry *prometheus.Registry) LedgerMetrics {
	factory := promauto.With(registry)
	return &ledgerMetrics{
		ordersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "The total number of created orders",
			},
			[]string{"payment_method"},
		),
		orderRevenue: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_revenue_total",
				Help: "Sum of order totals at creation time",
			},
			[]string{"payment_method"},
		),
		orderTotals: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_total_amount",
				Help:    "Order totals distribution",
				Buckets: prometheus.ExponentialBuckets(1, 4, 6), // 1, 4, 16, 64, 256, 1024
			},
		),
		statusChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_status_changes_total",
				Help: "The total number of order status transitions",
			},
			[]string{"from", "to"},
		),
		ordersDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_deleted_total",
				Help: "The total number of deleted orders",
			},
		),
	}
}

func (m *ledgerMetrics) OrderCreated(method string, total float64) {
	m.ordersCreated.WithLabelValues(method).Inc()
	m.orderRevenue.WithLabelValues(method).Add(total)
	m.orderTotals.Observe(total)
}

func (m *ledgerMetrics) OrderStatusChanged(from, to string) {
	m.statusChanges.WithLabelValues(from, to).Inc()
}

func (m *ledgerMetrics) OrderDeleted() {
	m.ordersDeleted.Inc()
}

// Nop discards every observation.
type Nop struct{}

func (Nop) OrderCreated(string, float64) {}
func (Nop) OrderStatusChanged(string, string) {}
func (Nop) OrderDeleted() {}
func (Nop) ObserveRequest(string, string, int, time.Duration) {}

type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewHTTPMetrics(registry *prometheus.Registry) *HTTPMetrics {
	factory := promauto.With(registry)
	return &HTTPMetrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "The total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *HTTPMetrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(latency.Seconds())
}
