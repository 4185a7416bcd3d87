package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is metadata for an uploaded file (invoice, bill of lading,
// packing list). The binary lives in external storage; only the reference
// is kept here.
type Document struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	ContentType string         `json:"content_type" gorm:"size:100"`
	SizeBytes   int64          `json:"size_bytes"`
	StorageURL  string         `json:"storage_url" gorm:"size:1000;not null"`
	OrderID     *uint          `json:"order_id,omitempty" gorm:"index"`
	CustomerID  *uint          `json:"customer_id,omitempty" gorm:"index"`
	UploadedBy  string         `json:"uploaded_by" gorm:"size:255"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
