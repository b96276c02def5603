package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"printshop-backend/models"
	"printshop-backend/store"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type recordingMetrics struct {
	created []float64
	changes [][2]string
	deleted int
}

func (m *recordingMetrics) OrderCreated(_ string, total float64) {
	m.created = append(m.created, total)
}

func (m *recordingMetrics) OrderStatusChanged(from, to string) {
	m.changes = append(m.changes, [2]string{from, to})
}

func (m *recordingMetrics) OrderDeleted() { m.deleted++ }

var errStorage = errors.New("connection reset")

// brokenRepo fails every order read.
type brokenRepo struct {
	store.Repository
}

func (brokenRepo) ListOrders(context.Context) ([]models.Order, error) {
	return nil, errStorage
}

func (brokenRepo) GetService(context.Context, string) (models.Service, error) {
	return models.Service{}, errStorage
}

type fixture struct {
	repo    *store.MemoryStore
	clock   *fakeClock
	metrics *recordingMetrics
	ledger  *OrderLedger
	reports *ReportingEngine

	copyA4     models.Service
	lamination models.Service
	binding    models.Service
	john       models.Customer
}

var fixtureNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		repo:    store.NewMemoryStore(),
		clock:   &fakeClock{now: fixtureNow},
		metrics: &recordingMetrics{},
	}
	f.ledger = NewOrderLedger(LedgerDeps{
		Repo:     f.repo,
		Metrics:  f.metrics,
		Clock:    f.clock.Now,
		Location: time.UTC,
	})
	f.reports = NewReportingEngine(f.repo, f.clock.Now, time.UTC)

	var err error
	f.copyA4, err = f.repo.CreateService(ctx, models.Service{Name: "B&W Copy (A4)", Price: 0.10, UnitType: "page", IsActive: true})
	require.NoError(t, err)
	f.lamination, err = f.repo.CreateService(ctx, models.Service{Name: "Lamination (A4)", Price: 2.00, UnitType: "sheet", IsActive: true})
	require.NoError(t, err)
	f.binding, err = f.repo.CreateService(ctx, models.Service{Name: "Spiral Binding", Price: 3.50, UnitType: "piece", IsActive: true})
	require.NoError(t, err)
	f.john, err = f.repo.CreateCustomer(ctx, models.Customer{Name: "John Smith", Phone: "555-0101", Email: "john@email.com"})
	require.NoError(t, err)
	return f
}

// order creates a John Smith order at the given time.
func (f *fixture) order(t *testing.T, at time.Time, items ...OrderItemRequest) models.Order {
	t.Helper()
	f.clock.Set(at)
	defer f.clock.Set(fixtureNow)
	o, err := f.ledger.CreateOrder(context.Background(), CreateOrderRequest{CustomerID: f.john.ID, Items: items})
	require.NoError(t, err)
	return o
}

func item(svc models.Service, qty int) OrderItemRequest {
	return OrderItemRequest{ServiceID: svc.ID, Quantity: qty}
}

func pricedItem(svc models.Service, qty int, price float64) OrderItemRequest {
	return OrderItemRequest{ServiceID: svc.ID, Quantity: qty, UnitPrice: &price}
}
