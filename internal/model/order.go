package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the finite set of states an order moves through.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusSourcing  OrderStatus = "sourcing"
	OrderStatusPacking   OrderStatus = "packing"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusCustoms   OrderStatus = "customs"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusClosed    OrderStatus = "closed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:   {},
	OrderStatusConfirmed: {},
	OrderStatusSourcing:  {},
	OrderStatusPacking:   {},
	OrderStatusInTransit: {},
	OrderStatusCustoms:   {},
	OrderStatusDelivered: {},
	OrderStatusClosed:    {},
	OrderStatusCancelled: {},
}

// ValidOrderStatus reports whether s is a member of the status enum.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderStatuses[s]
	return ok
}

// Terminal reports whether s closes the order (sets ClosedAt).
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusClosed
}

// Order is a freight-forwarding order. CustomerID is nil for orders placed
// before the customer registered; those are re-owned on signup by email.
// DepositAmount and BalanceDue are derived from completed payments and are
// recomputed, never incremented.
type Order struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	OrderNumber   string          `json:"order_number" gorm:"uniqueIndex;size:32;not null"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CustomerID    *uint           `json:"customer_id" gorm:"index"`
	CustomerName  string          `json:"customer_name" gorm:"size:255;not null"`
	CustomerEmail string          `json:"customer_email" gorm:"size:255;not null;index"`
	Origin        string          `json:"origin" gorm:"size:255"`
	Destination   string          `json:"destination" gorm:"size:255"`
	Currency      string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(20,2);not null;default:0"`
	DepositAmount decimal.Decimal `json:"deposit_amount" gorm:"type:decimal(20,2);not null;default:0"`
	BalanceDue    decimal.Decimal `json:"balance_due" gorm:"type:decimal(20,2);not null;default:0"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Payments      []Payment            `json:"payments,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is a line item on an order.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	ProductID   *uint           `json:"product_id,omitempty" gorm:"index"`
	Description string          `json:"description" gorm:"size:500;not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:1"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(20,2);not null;default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderStatusHistory is an append-only log of status transitions. Rows are
// written exactly once per transition and never updated or deleted, so it
// carries no UpdatedAt or soft delete.
type OrderStatusHistory struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OrderID   uint        `json:"order_id" gorm:"not null;index"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(20);not null"`
	Note      string      `json:"note,omitempty" gorm:"size:1000"`
	ChangedBy string      `json:"changed_by" gorm:"size:255;not null"`
	CreatedAt time.Time   `json:"created_at"`
}
