package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteStatus is the finite set of states a quote request moves through.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusQuoted   QuoteStatus = "quoted"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// Quote is a shipping quote request. Anonymous submissions have a nil
// CustomerID and surface in the CRM as a lead keyed by email until the
// visitor signs up, at which point matching quotes are re-owned.
type Quote struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	QuoteNumber      string          `json:"quote_number" gorm:"uniqueIndex;size:32;not null"`
	Status           QuoteStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CustomerID       *uint           `json:"customer_id" gorm:"index"`
	CustomerName     string          `json:"customer_name" gorm:"size:255;not null"`
	CustomerEmail    string          `json:"customer_email" gorm:"size:255;not null;index"`
	CustomerPhone    string          `json:"customer_phone,omitempty" gorm:"size:50"`
	Company          string          `json:"company,omitempty" gorm:"size:255"`
	Origin           string          `json:"origin" gorm:"size:255;not null"`
	Destination      string          `json:"destination" gorm:"size:255;not null"`
	Mode             string          `json:"mode" gorm:"size:20;default:'sea'"` // sea, air, rail, road
	CargoDescription string          `json:"cargo_description" gorm:"size:2000"`
	WeightKg         decimal.Decimal `json:"weight_kg" gorm:"type:decimal(12,2);default:0"`
	VolumeCbm        decimal.Decimal `json:"volume_cbm" gorm:"type:decimal(12,3);default:0"`
	QuotedAmount     decimal.Decimal `json:"quoted_amount" gorm:"type:decimal(20,2);default:0"`
	Currency         string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Notes            string          `json:"notes,omitempty" gorm:"size:2000"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `json:"-" gorm:"index"`
}
