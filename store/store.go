// Package store holds the persistence layer behind the catalog, customer
// list and order ledger. MemoryStore is the default; GormStore keeps the same
// data in Postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"printshop-backend/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrPersistence wraps failures of the underlying storage engine.
	ErrPersistence = errors.New("persistence failure")
)

// UnknownCustomerName is snapshotted onto orders whose customer id does not
// resolve.
const UnknownCustomerName = "Unknown"

type ServicePatch struct {
	Name        *string
	Description *string
	Price       *float64
	UnitType    *string
	IsActive    *bool
}

func (p ServicePatch) apply(s *models.Service) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.UnitType != nil {
		s.UnitType = *p.UnitType
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
}

type CustomerPatch struct {
	Name  *string
	Phone *string
	Email *string
}

func (p CustomerPatch) apply(c *models.Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
}

// TransitionFunc decides whether an order may move from one status to
// another. It runs inside the store's critical section.
type TransitionFunc func(from, to models.OrderStatus) error

type Repository interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (models.Service, error)
	CreateService(ctx context.Context, svc models.Service) (models.Service, error)
	UpdateService(ctx context.Context, id string, patch ServicePatch) (models.Service, error)
	DeleteService(ctx context.Context, id string) error

	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CountCustomers(ctx context.Context) (int, error)
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, patch CustomerPatch) (models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	// ListOrders returns orders most recent first.
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	// CreateOrder allocates the invoice sequence, snapshots the customer
	// name, inserts the order at the head of the ledger and updates the
	// customer's aggregates as one atomic unit. Items and totals must
	// already be priced.
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, allow TransitionFunc) (models.Order, error)
	// DeleteOrder removes the order and reverses its contribution to the
	// customer's aggregates.
	DeleteOrder(ctx context.Context, id string) error
}

// InvoiceNumber formats INV-<YYYYMMDD>-<seq>, padding seq to three digits.
func InvoiceNumber(createdAt time.Time, seq int64) string {
	return fmt.Sprintf("INV-%s-%03d", createdAt.Format("20060102"), seq)
}
