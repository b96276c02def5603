package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"printshop-backend/metrics"
	"printshop-backend/models"
	"printshop-backend/store"
	"printshop-backend/utils"

	"go.uber.org/zap"
)

var timeNow = time.Now

type OrderItemRequest struct {
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	// UnitPrice defaults to the catalog price when omitted.
	UnitPrice *float64 `json:"unit_price" validate:"omitnil,gte=0"`
}

type CreateOrderRequest struct {
	CustomerID    string               `json:"customer_id" validate:"required"`
	Items         []OrderItemRequest   `json:"items" validate:"required,min=1,dive"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Notes         string               `json:"notes"`
}

type OrderFilter struct {
	Search string
	// Status keeps only orders in this status; empty or "all" keeps every
	// order.
	Status string
}

type LedgerDeps struct {
	Repo     store.Repository
	Metrics  metrics.LedgerMetrics
	Logger   *zap.Logger
	Clock    func() time.Time
	Location *time.Location
}

// OrderLedger prices, records and tracks customer orders.
type OrderLedger struct {
	repo    store.Repository
	metrics metrics.LedgerMetrics
	log     *zap.Logger
	clock   func() time.Time
	loc     *time.Location
}

func NewOrderLedger(deps LedgerDeps) *OrderLedger {
	l := &OrderLedger{
		repo:    deps.Repo,
		metrics: deps.Metrics,
		log:     deps.Logger,
		clock:   deps.Clock,
		loc:     deps.Location,
	}
	if l.metrics == nil {
		l.metrics = metrics.Nop{}
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	if l.clock == nil {
		l.clock = timeNow
	}
	if l.loc == nil {
		l.loc = time.Local
	}
	return l
}

// CreateOrder validates and prices the request, then records the order and
// the customer's aggregate update as one unit. Nothing is written when
// validation fails.
func (l *OrderLedger) CreateOrder(ctx context.Context, req CreateOrderRequest) (models.Order, error) {
	req.CustomerID = strings.TrimSpace(req.CustomerID)

	// Blank rows left over from the order form are dropped, not rejected.
	items := make([]OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		item.ServiceID = strings.TrimSpace(item.ServiceID)
		if item.ServiceID == "" || item.Quantity <= 0 {
			continue
		}
		items = append(items, item)
	}
	req.Items = items

	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCash
	}
	if err := validateStruct(req); err != nil {
		return models.Order{}, err
	}
	if !req.PaymentMethod.Valid() {
		return models.Order{}, validationErr("unknown payment method %q", req.PaymentMethod)
	}

	lines := make([]models.OrderItem, 0, len(req.Items))
	totals := make([]float64, 0, len(req.Items))
	for _, item := range req.Items {
		svc, err := l.repo.GetService(ctx, item.ServiceID)
		if err != nil {
			if isNotFound(err) {
				return models.Order{}, validationErr("unknown service %q", item.ServiceID)
			}
			return models.Order{}, err
		}
		price := svc.Price
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		line := models.OrderItem{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Quantity:    item.Quantity,
			UnitPrice:   utils.Round2(price),
			Total:       utils.LineTotal(item.Quantity, price),
		}
		lines = append(lines, line)
		totals = append(totals, line.Total)
	}

	order, err := l.repo.CreateOrder(ctx, models.Order{
		CustomerID:    req.CustomerID,
		Items:         lines,
		Total:         utils.SumRounded(totals...),
		Status:        models.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		Notes:         strings.TrimSpace(req.Notes),
		CreatedAt:     l.clock().In(l.loc),
	})
	if err != nil {
		l.log.Error("failed to create order", zap.String("customer_id", req.CustomerID), zap.Error(err))
		return models.Order{}, err
	}

	l.metrics.OrderCreated(string(order.PaymentMethod), order.Total)
	l.log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("invoice_no", order.InvoiceNo),
		zap.String("customer_id", order.CustomerID),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

// allowTransition permits pending -> completed|cancelled and re-applying the
// current status.
func allowTransition(from, to models.OrderStatus) error {
	if from == to {
		return nil
	}
	if from == models.OrderStatusPending &&
		(to == models.OrderStatusCompleted || to == models.OrderStatusCancelled) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func (l *OrderLedger) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, validationErr("unknown status %q", status)
	}

	var from models.OrderStatus
	order, err := l.repo.UpdateOrderStatus(ctx, id, status, func(current, next models.OrderStatus) error {
		from = current
		return allowTransition(current, next)
	})
	if err != nil {
		return models.Order{}, err
	}

	if from != status {
		l.metrics.OrderStatusChanged(string(from), string(status))
		l.log.Info("order status changed",
			zap.String("order_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(status)),
		)
	}
	return order, nil
}

// Delete removes the order and takes it back out of the customer's totals.
func (l *OrderLedger) Delete(ctx context.Context, id string) error {
	if err := l.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	l.metrics.OrderDeleted()
	l.log.Info("order deleted", zap.String("order_id", id))
	return nil
}

func (l *OrderLedger) Get(ctx context.Context, id string) (models.Order, error) {
	return l.repo.GetOrder(ctx, id)
}

// List returns orders most recent first. Search matches the invoice number or
// the customer name, ignoring case.
func (l *OrderLedger) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	status := models.OrderStatus(strings.ToLower(strings.TrimSpace(filter.Status)))
	if status == "all" {
		status = ""
	}
	if status != "" && !status.Valid() {
		return nil, validationErr("unknown status %q", filter.Status)
	}

	orders, err := l.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.TrimSpace(filter.Search)
	if search == "" && status == "" {
		return orders, nil
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if search != "" && !utils.ContainsFold(o.InvoiceNo, search) && !utils.ContainsFold(o.CustomerName, search) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
