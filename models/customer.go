package models

import (
	"time"
)

// Customer carries denormalized lifetime aggregates maintained by the order
// ledger: TotalOrders counts the customer's non-deleted orders and TotalSpent
// sums their totals.
type Customer struct {
	ID    string `gorm:"type:uuid;primary_key" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Phone string `gorm:"not null" json:"phone"`
	Email string `json:"email"`

	TotalOrders int     `gorm:"default:0" json:"total_orders"`
	TotalSpent  float64 `gorm:"type:decimal(10,2);default:0.0" json:"total_spent"`

	CreatedAt time.Time `json:"created_at"`
}
