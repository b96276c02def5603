package store

import (
	"context"
	"slices"
	"sync"

	"printshop-backend/models"
	"printshop-backend/utils"

	"github.com/google/uuid"
)

// MemoryStore keeps every collection in process memory, newest first. All
// compound ledger operations run under the write lock so readers never
// observe an order without its customer aggregate update.
type MemoryStore struct {
	mu         sync.RWMutex
	services   []models.Service
	customers  []models.Customer
	orders     []models.Order
	invoiceSeq int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListServices(_ context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.services), nil
}

func (s *MemoryStore) GetService(_ context.Context, id string) (models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.serviceIndex(id)
	if i < 0 {
		return models.Service{}, ErrNotFound
	}
	return s.services[i], nil
}

func (s *MemoryStore) CreateService(_ context.Context, svc models.Service) (models.Service, error) {
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = slices.Insert(s.services, 0, svc)
	return svc, nil
}

func (s *MemoryStore) UpdateService(_ context.Context, id string, patch ServicePatch) (models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.serviceIndex(id)
	if i < 0 {
		return models.Service{}, ErrNotFound
	}
	patch.apply(&s.services[i])
	return s.services[i], nil
}

func (s *MemoryStore) DeleteService(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.serviceIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.services = slices.Delete(s.services, i, i+1)
	return nil
}

func (s *MemoryStore) ListCustomers(_ context.Context) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.customers), nil
}

func (s *MemoryStore) CountCustomers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), nil
}

func (s *MemoryStore) GetCustomer(_ context.Context, id string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.customerIndex(id)
	if i < 0 {
		return models.Customer{}, ErrNotFound
	}
	return s.customers[i], nil
}

func (s *MemoryStore) CreateCustomer(_ context.Context, c models.Customer) (models.Customer, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = slices.Insert(s.customers, 0, c)
	return c, nil
}

func (s *MemoryStore) UpdateCustomer(_ context.Context, id string, patch CustomerPatch) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.customerIndex(id)
	if i < 0 {
		return models.Customer{}, ErrNotFound
	}
	patch.apply(&s.customers[i])
	return s.customers[i], nil
}

func (s *MemoryStore) DeleteCustomer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.customerIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.customers = slices.Delete(s.customers, i, i+1)
	return nil
}

func (s *MemoryStore) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = cloneOrder(o)
	}
	return out, nil
}

func (s *MemoryStore) GetOrder(_ context.Context, id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.orderIndex(id)
	if i < 0 {
		return models.Order{}, ErrNotFound
	}
	return cloneOrder(s.orders[i]), nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, order models.Order) (models.Order, error) {
	order = cloneOrder(order)
	order.ID = uuid.NewString()
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		order.Items[i].Position = i
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.NewString()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoiceSeq++
	order.Sequence = s.invoiceSeq
	order.InvoiceNo = InvoiceNumber(order.CreatedAt, order.Sequence)

	ci := s.customerIndex(order.CustomerID)
	if ci >= 0 {
		cust := &s.customers[ci]
		order.CustomerName = cust.Name
		cust.TotalOrders++
		cust.TotalSpent = utils.SumRounded(cust.TotalSpent, order.Total)
	} else {
		order.CustomerName = UnknownCustomerName
	}

	s.orders = slices.Insert(s.orders, 0, order)
	return cloneOrder(order), nil
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, id string, status models.OrderStatus, allow TransitionFunc) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(id)
	if i < 0 {
		return models.Order{}, ErrNotFound
	}
	if allow != nil {
		if err := allow(s.orders[i].Status, status); err != nil {
			return models.Order{}, err
		}
	}
	s.orders[i].Status = status
	return cloneOrder(s.orders[i]), nil
}

func (s *MemoryStore) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	order := s.orders[i]
	s.orders = slices.Delete(s.orders, i, i+1)

	if ci := s.customerIndex(order.CustomerID); ci >= 0 {
		cust := &s.customers[ci]
		cust.TotalOrders = max(cust.TotalOrders-1, 0)
		cust.TotalSpent = max(utils.SumRounded(cust.TotalSpent, -order.Total), 0)
	}
	return nil
}

// seedOrder records a historical order at the head of the ledger without
// touching customer aggregates. Callers pass orders oldest first so invoice
// sequences grow with time.
func (s *MemoryStore) seedOrder(order models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = uuid.NewString()
	for i := range order.Items {
		order.Items[i].ID = uuid.NewString()
		order.Items[i].OrderID = order.ID
		order.Items[i].Position = i
	}
	s.invoiceSeq++
	order.Sequence = s.invoiceSeq
	order.InvoiceNo = InvoiceNumber(order.CreatedAt, order.Sequence)
	s.orders = slices.Insert(s.orders, 0, order)
	return cloneOrder(order)
}

func (s *MemoryStore) serviceIndex(id string) int {
	return slices.IndexFunc(s.services, func(svc models.Service) bool { return svc.ID == id })
}

func (s *MemoryStore) customerIndex(id string) int {
	return slices.IndexFunc(s.customers, func(c models.Customer) bool { return c.ID == id })
}

func (s *MemoryStore) orderIndex(id string) int {
	return slices.IndexFunc(s.orders, func(o models.Order) bool { return o.ID == id })
}

func cloneOrder(o models.Order) models.Order {
	o.Items = slices.Clone(o.Items)
	return o
}
