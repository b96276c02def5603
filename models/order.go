package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOther    PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// Order is an immutable snapshot of what was sold. Only Status changes after
// creation; CustomerName and the item ServiceName/UnitPrice fields are copies
// taken at creation time, not references into the catalog or customer list.
type Order struct {
	ID            string        `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo     string        `gorm:"uniqueIndex;not null" json:"invoice_no"`
	Sequence      int64         `gorm:"index;not null" json:"-"`
	CustomerID    string        `gorm:"index;not null" json:"customer_id"`
	CustomerName  string        `gorm:"not null" json:"customer_name"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID" json:"items"`
	Total         float64       `gorm:"type:decimal(10,2);not null" json:"total"`
	Status        OrderStatus   `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20)" json:"payment_method"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
}

type OrderItem struct {
	ID          string  `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     string  `gorm:"type:uuid;index;not null" json:"-"`
	Position    int     `gorm:"not null" json:"-"`
	ServiceID   string  `gorm:"index;not null" json:"service_id"`
	ServiceName string  `gorm:"not null" json:"service_name"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Total       float64 `gorm:"type:decimal(10,2);not null" json:"total"`
}

// InvoiceSequence backs the store-wide invoice counter in SQL storage.
type InvoiceSequence struct {
	Name  string `gorm:"primary_key"`
	Value int64  `gorm:"not null;default:0"`
}
