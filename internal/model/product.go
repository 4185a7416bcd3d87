package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry for a sourcing/forwarding service offering.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SKU         string          `json:"sku" gorm:"uniqueIndex;size:64;not null"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description,omitempty" gorm:"size:2000"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null;default:0"`
	Currency    string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Active      bool            `json:"active" gorm:"default:true;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}
