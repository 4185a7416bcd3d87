package repository

import (
	"context"

	"gorm.io/gorm"

	"freightdesk/internal/model"
)

// PaymentRepository defines read operations for the admin payments view.
// Payments are written through OrderRepository so the write shares the
// order's transaction.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Payment, error)
	List(ctx context.Context) ([]model.Payment, error)
	ListByOrder(ctx context.Context, orderID uint) ([]model.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// FindByID finds a payment by ID.
func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// List lists all payments, newest first.
func (r *paymentRepository) List(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListByOrder lists payments recorded against an order.
func (r *paymentRepository) ListByOrder(ctx context.Context, orderID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
