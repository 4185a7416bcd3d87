package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freightdesk/internal/model"
)

// OrderRepository defines order persistence operations. Payments and status
// history live here as well so lifecycle transitions can run inside one
// transaction via WithTransaction.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Order, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.Order, error)
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)
	ListUnclaimed(ctx context.Context) ([]model.Order, error)
	ClaimByEmail(ctx context.Context, email string, customerID uint) (int64, error)
	AppendHistory(ctx context.Context, entry *model.OrderStatusHistory) error
	CreatePayment(ctx context.Context, payment *model.Payment) error
	SumCompletedPayments(ctx context.Context, orderID uint) (decimal.Decimal, error)
	NextOrderNumber(ctx context.Context) (string, error)
	NextPaymentNumber(ctx context.Context) (string, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates a new order with its items.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update updates an existing order.
func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete soft-deletes an order.
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds an order with its items, payments and status history.
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate finds an order by ID with a row-level lock.
func (r *orderRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List lists all orders, newest first.
func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByCustomer lists a customer's orders, newest first.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByIDs fetches the orders matching the given ids.
func (r *orderRepository) ListByIDs(ctx context.Context, ids []uint) ([]model.Order, error) {
	var orders []model.Order
	if len(ids) == 0 {
		return orders, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByEmail lists orders placed under an email address.
func (r *orderRepository) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListUnclaimed lists orders with no linked account; these surface as leads
// in the CRM.
func (r *orderRepository) ListUnclaimed(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("customer_id IS NULL").
		Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ClaimByEmail re-owns anonymous orders matching email to the given
// customer. Returns the number of re-owned rows.
func (r *orderRepository) ClaimByEmail(ctx context.Context, email string, customerID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("customer_email = ? AND customer_id IS NULL", email).
		Update("customer_id", customerID)
	return res.RowsAffected, res.Error
}

// AppendHistory writes one status history row. History is append-only;
// there is deliberately no update or delete counterpart.
func (r *orderRepository) AppendHistory(ctx context.Context, entry *model.OrderStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreatePayment records a payment row against an order.
func (r *orderRepository) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// SumCompletedPayments returns the sum of all completed payments for an
// order. Aggregates are always recomputed from this, never incremented.
func (r *orderRepository) SumCompletedPayments(ctx context.Context, orderID uint) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderID, model.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// NextOrderNumber allocates the next sequential order number. Soft-deleted
// orders still count so numbers are never reused.
func (r *orderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&model.Order{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("FF-%06d", count+1), nil
}

// NextPaymentNumber allocates the next sequential payment number.
func (r *orderRepository) NextPaymentNumber(ctx context.Context) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&model.Payment{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("PAY-%06d", count+1), nil
}

// WithTransaction executes fn within a database transaction, handing it a
// transaction-bound repository.
func (r *orderRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &orderRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
