package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account: a customer or an admin.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string         `json:"role" gorm:"size:50;not null;default:'user';index"`
	Phone        string         `json:"phone,omitempty" gorm:"size:50"`
	Company      string         `json:"company,omitempty" gorm:"size:255"`
	Language     string         `json:"language" gorm:"size:10;default:'en'"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
