package store

import (
	"context"
	"os"
	"sync"
	"testing"

	"printshop-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestGormStore connects to TEST_DB_URL and empties every table. Tests
// using it are skipped when the variable is unset.
func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	s, err := NewGormStore(db)
	require.NoError(t, err)
	require.NoError(t, db.Exec("TRUNCATE order_items, orders, customers, services").Error)
	require.NoError(t, db.Model(&models.InvoiceSequence{}).Where("name = ?", invoiceSequenceName).Update("value", 0).Error)
	return s
}

func TestGormStoreOrderLifecycle(t *testing.T) {
	s := newTestGormStore(t)
	ctx := context.Background()

	cust, err := s.CreateCustomer(ctx, models.Customer{Name: "John Smith", Phone: "555-0101"})
	require.NoError(t, err)

	order, err := s.CreateOrder(ctx, newOrder(cust.ID, 11.00))
	require.NoError(t, err)
	assert.Equal(t, "INV-20240315-001", order.InvoiceNo)
	assert.Equal(t, "John Smith", order.CustomerName)

	got, err := s.GetCustomer(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalOrders)
	assert.Equal(t, 11.00, got.TotalSpent)

	loaded, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "B&W Copy (A4)", loaded.Items[0].ServiceName)

	updated, err := s.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCompleted, nil)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)

	require.NoError(t, s.DeleteOrder(ctx, order.ID))
	got, err = s.GetCustomer(ctx, cust.ID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.TotalSpent)

	_, err = s.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteOrder(ctx, "not-a-uuid"), ErrNotFound)
}

func TestGormStoreConcurrentInvoiceNumbers(t *testing.T) {
	s := newTestGormStore(t)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	invoices := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := s.CreateOrder(ctx, newOrder("ghost", 1))
			if assert.NoError(t, err) {
				invoices <- o.InvoiceNo
			}
		}()
	}
	wg.Wait()
	close(invoices)

	seen := map[string]bool{}
	for inv := range invoices {
		assert.False(t, seen[inv], inv)
		seen[inv] = true
	}
	assert.Len(t, seen, n)
}

func TestGormStoreServiceKeepsInactiveFlag(t *testing.T) {
	s := newTestGormStore(t)
	ctx := context.Background()

	svc, err := s.CreateService(ctx, models.Service{Name: "Banner Printing", Price: 15, UnitType: "sq ft", IsActive: false})
	require.NoError(t, err)

	got, err := s.GetService(ctx, svc.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
