package services

import (
	"context"
	"fmt"
	"testing"

	"printshop-backend/models"
	"printshop-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderPricesAndSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.ledger.CreateOrder(ctx, CreateOrderRequest{
		CustomerID: f.john.ID,
		Items:      []OrderItemRequest{item(f.copyA4, 50), item(f.lamination, 3)},
		Notes:      "  Rush order ",
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 5.00, order.Items[0].Total)
	assert.Equal(t, 6.00, order.Items[1].Total)
	assert.Equal(t, 11.00, order.Total)
	assert.Equal(t, "B&W Copy (A4)", order.Items[0].ServiceName)
	assert.Equal(t, 0.10, order.Items[0].UnitPrice)
	assert.Equal(t, "John Smith", order.CustomerName)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentCash, order.PaymentMethod)
	assert.Equal(t, "Rush order", order.Notes)
	assert.Equal(t, "INV-20240315-001", order.InvoiceNo)
	assert.Equal(t, fixtureNow, order.CreatedAt)

	cust, err := f.repo.GetCustomer(ctx, f.john.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cust.TotalOrders)
	assert.Equal(t, 11.00, cust.TotalSpent)

	assert.Equal(t, []float64{11.00}, f.metrics.created)
}

func TestCreateOrderTotalIsSumOfRoundedLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		items []OrderItemRequest
		want  float64
	}{
		{"catalog prices", []OrderItemRequest{item(f.copyA4, 3), item(f.binding, 1)}, 3.80},
		{"overridden price", []OrderItemRequest{pricedItem(f.copyA4, 3, 0.333)}, 1.00},
		{"half cents", []OrderItemRequest{pricedItem(f.copyA4, 1, 0.005), pricedItem(f.lamination, 1, 0.005)}, 0.02},
		{"free item", []OrderItemRequest{pricedItem(f.binding, 4, 0)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := f.ledger.CreateOrder(ctx, CreateOrderRequest{CustomerID: f.john.ID, Items: tt.items})
			require.NoError(t, err)
			assert.Equal(t, tt.want, order.Total)
		})
	}
}

func TestCreateOrderAggregatesAccumulate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.repo.GetCustomer(ctx, f.john.ID)
	require.NoError(t, err)

	first := f.order(t, fixtureNow, item(f.binding, 3))
	second := f.order(t, fixtureNow, item(f.copyA4, 7))

	after, err := f.repo.GetCustomer(ctx, f.john.ID)
	require.NoError(t, err)
	assert.Equal(t, before.TotalOrders+2, after.TotalOrders)
	assert.Equal(t, 10.50+0.70, first.Total+second.Total)
	assert.Equal(t, 11.20, after.TotalSpent)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	order, err := f.ledger.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "deleted-customer",
		Items:      []OrderItemRequest{item(f.copyA4, 10)},
	})
	require.NoError(t, err)
	assert.Equal(t, store.UnknownCustomerName, order.CustomerName)
	assert.Equal(t, 1.00, order.Total)
}

func TestCreateOrderFiltersBlankRows(t *testing.T) {
	f := newFixture(t)

	order, err := f.ledger.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: f.john.ID,
		Items: []OrderItemRequest{
			{ServiceID: "", Quantity: 3},
			item(f.lamination, 0),
			item(f.lamination, 2),
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 4.00, order.Total)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"missing customer", CreateOrderRequest{Items: []OrderItemRequest{item(f.copyA4, 1)}}},
		{"no items", CreateOrderRequest{CustomerID: f.john.ID}},
		{"only blank rows", CreateOrderRequest{CustomerID: f.john.ID, Items: []OrderItemRequest{{Quantity: 2}, item(f.copyA4, -1)}}},
		{"negative price", CreateOrderRequest{CustomerID: f.john.ID, Items: []OrderItemRequest{pricedItem(f.copyA4, 1, -0.5)}}},
		{"unknown payment method", CreateOrderRequest{CustomerID: f.john.ID, Items: []OrderItemRequest{item(f.copyA4, 1)}, PaymentMethod: "barter"}},
		{"unknown service", CreateOrderRequest{CustomerID: f.john.ID, Items: []OrderItemRequest{item(f.copyA4, 1), {ServiceID: "svc_999", Quantity: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.CreateOrder(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	orders, err := f.repo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	cust, err := f.repo.GetCustomer(ctx, f.john.ID)
	require.NoError(t, err)
	assert.Zero(t, cust.TotalOrders)
	assert.Zero(t, cust.TotalSpent)
	assert.Empty(t, f.metrics.created)
}

func TestCreateOrderPropagatesStorageErrors(t *testing.T) {
	ledger := NewOrderLedger(LedgerDeps{Repo: brokenRepo{}})

	_, err := ledger.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items:      []OrderItemRequest{{ServiceID: "s1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestOrderSnapshotsSurviveCatalogChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.order(t, fixtureNow, item(f.copyA4, 10))

	name, price := "Mono Copy", 0.25
	_, err := f.repo.UpdateService(ctx, f.copyA4.ID, store.ServicePatch{Name: &name, Price: &price})
	require.NoError(t, err)
	_, err = f.repo.UpdateCustomer(ctx, f.john.ID, store.CustomerPatch{Name: &name})
	require.NoError(t, err)

	got, err := f.ledger.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "B&W Copy (A4)", got.Items[0].ServiceName)
	assert.Equal(t, 0.10, got.Items[0].UnitPrice)
	assert.Equal(t, "John Smith", got.CustomerName)
}

func TestInvoiceNumbersStrictlyIncrease(t *testing.T) {
	f := newFixture(t)

	var prev int64
	seen := map[string]bool{}
	for i := 0; i < 12; i++ {
		o := f.order(t, fixtureNow.AddDate(0, 0, i%3), item(f.copyA4, 1))
		assert.Greater(t, o.Sequence, prev)
		assert.False(t, seen[o.InvoiceNo])
		assert.Equal(t, fmt.Sprintf("INV-%s-%03d", o.CreatedAt.Format("20060102"), i+1), o.InvoiceNo)
		prev = o.Sequence
		seen[o.InvoiceNo] = true
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		steps   []models.OrderStatus
		wantErr error
		final   models.OrderStatus
	}{
		{"complete", []models.OrderStatus{models.OrderStatusCompleted}, nil, models.OrderStatusCompleted},
		{"cancel", []models.OrderStatus{models.OrderStatusCancelled}, nil, models.OrderStatusCancelled},
		{"same status is a no-op", []models.OrderStatus{models.OrderStatusPending}, nil, models.OrderStatusPending},
		{"reopen completed", []models.OrderStatus{models.OrderStatusCompleted, models.OrderStatusPending}, ErrInvalidTransition, models.OrderStatusCompleted},
		{"complete cancelled", []models.OrderStatus{models.OrderStatusCancelled, models.OrderStatusCompleted}, ErrInvalidTransition, models.OrderStatusCancelled},
		{"unknown status", []models.OrderStatus{"shipped"}, ErrValidation, models.OrderStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			order := f.order(t, fixtureNow, item(f.binding, 1))

			var err error
			for _, status := range tt.steps {
				_, err = f.ledger.UpdateStatus(ctx, order.ID, status)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			got, err := f.ledger.Get(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.final, got.Status)
		})
	}
}

func TestUpdateStatusLeavesAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.order(t, fixtureNow, item(f.binding, 2))

	updated, err := f.ledger.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)

	cust, err := f.repo.GetCustomer(ctx, f.john.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cust.TotalOrders)
	assert.Equal(t, 7.00, cust.TotalSpent)

	_, err = f.ledger.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"pending", "cancelled"}}, f.metrics.changes)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.UpdateStatus(context.Background(), "missing", models.OrderStatusCompleted)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteOrderReversesAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.order(t, fixtureNow, item(f.copyA4, 50))
	drop := f.order(t, fixtureNow, item(f.binding, 1))

	require.NoError(t, f.ledger.Delete(ctx, drop.ID))

	cust, err := f.repo.GetCustomer(ctx, f.john.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cust.TotalOrders)
	assert.Equal(t, keep.Total, cust.TotalSpent)
	assert.Equal(t, 1, f.metrics.deleted)

	assert.ErrorIs(t, f.ledger.Delete(ctx, drop.ID), store.ErrNotFound)
}

func TestListOrdersFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sarah, err := f.repo.CreateCustomer(ctx, models.Customer{Name: "Sarah Johnson", Phone: "555-0102"})
	require.NoError(t, err)

	first := f.order(t, fixtureNow, item(f.copyA4, 1))
	second, err := f.ledger.CreateOrder(ctx, CreateOrderRequest{CustomerID: sarah.ID, Items: []OrderItemRequest{item(f.binding, 1)}})
	require.NoError(t, err)
	_, err = f.ledger.UpdateStatus(ctx, first.ID, models.OrderStatusCompleted)
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter OrderFilter
		want   []string
	}{
		{"no filter, newest first", OrderFilter{}, []string{second.ID, first.ID}},
		{"all", OrderFilter{Status: "all"}, []string{second.ID, first.ID}},
		{"by status", OrderFilter{Status: "completed"}, []string{first.ID}},
		{"by customer name", OrderFilter{Search: "sarah"}, []string{second.ID}},
		{"by invoice", OrderFilter{Search: "inv-20240315-001"}, []string{first.ID}},
		{"search and status", OrderFilter{Search: "john", Status: "pending"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := f.ledger.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(orders))
			for _, o := range orders {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	_, err = f.ledger.List(ctx, OrderFilter{Status: "shipped"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAllowTransition(t *testing.T) {
	assert.NoError(t, allowTransition(models.OrderStatusPending, models.OrderStatusCompleted))
	assert.NoError(t, allowTransition(models.OrderStatusCompleted, models.OrderStatusCompleted))
	assert.ErrorIs(t, allowTransition(models.OrderStatusCancelled, models.OrderStatusPending), ErrInvalidTransition)
}
