package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus represents the status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentType distinguishes deposits from balance settlements.
type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypeBalance PaymentType = "balance"
	PaymentTypeFull    PaymentType = "full"
)

// Payment is a payment recorded against an order. Only completed payments
// count toward the order's deposit/balance aggregates.
type Payment struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	PaymentNumber string          `json:"payment_number" gorm:"uniqueIndex;size:32;not null"`
	OrderID       uint            `json:"order_id" gorm:"not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Currency      string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Method        string          `json:"method" gorm:"size:50"` // bank_transfer, card, gateway reference
	Status        PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'completed';index"`
	Type          PaymentType     `json:"type" gorm:"type:varchar(20);not null;default:'deposit'"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}
