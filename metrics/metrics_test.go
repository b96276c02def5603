package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewLedgerMetrics(registry).(*ledgerMetrics)

	m.OrderCreated("cash", 11.00)
	m.OrderCreated("cash", 4.00)
	m.OrderCreated("card", 7.50)
	m.OrderStatusChanged("pending", "completed")
	m.OrderDeleted()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersCreated.WithLabelValues("cash")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.orderRevenue.WithLabelValues("cash")))
	assert.Equal(t, 7.5, testutil.ToFloat64(m.orderRevenue.WithLabelValues("card")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusChanges.WithLabelValues("pending", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersDeleted))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["orders_created_total"])
	assert.True(t, names["order_total_amount"])
}

func TestHTTPMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewHTTPMetrics(registry)

	m.ObserveRequest("GET", "/api/orders", 200, 12*time.Millisecond)
	m.ObserveRequest("GET", "/api/orders", 200, 30*time.Millisecond)
	m.ObserveRequest("POST", "/api/orders", 400, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/orders", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/orders", "400")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.latency, "http_request_duration_seconds"))
}
