package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"freightdesk/internal/model"
)

// QuoteRepository defines quote persistence operations.
type QuoteRepository interface {
	Create(ctx context.Context, quote *model.Quote) error
	Update(ctx context.Context, quote *model.Quote) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Quote, error)
	List(ctx context.Context) ([]model.Quote, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Quote, error)
	ListByEmail(ctx context.Context, email string) ([]model.Quote, error)
	ListUnclaimed(ctx context.Context) ([]model.Quote, error)
	ClaimByEmail(ctx context.Context, email string, customerID uint) (int64, error)
	NextQuoteNumber(ctx context.Context) (string, error)
}

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository.
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

// Create creates a new quote.
func (r *quoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

// Update updates an existing quote.
func (r *quoteRepository) Update(ctx context.Context, quote *model.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// Delete soft-deletes a quote.
func (r *quoteRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Quote{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a quote by ID.
func (r *quoteRepository) FindByID(ctx context.Context, id uint) (*model.Quote, error) {
	var quote model.Quote
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&quote).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

// List lists all quotes, newest first.
func (r *quoteRepository) List(ctx context.Context) ([]model.Quote, error) {
	var quotes []model.Quote
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// ListByCustomer lists a customer's quotes, newest first.
func (r *quoteRepository) ListByCustomer(ctx context.Context, customerID uint) ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

// ListByEmail lists quotes submitted under an email address.
func (r *quoteRepository) ListByEmail(ctx context.Context, email string) ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("created_at DESC").Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

// ListUnclaimed lists quotes with no linked account; these surface as leads
// in the CRM.
func (r *quoteRepository) ListUnclaimed(ctx context.Context) ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.db.WithContext(ctx).
		Where("customer_id IS NULL").
		Order("created_at DESC").Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

// ClaimByEmail re-owns anonymous quotes matching email to the given
// customer. Returns the number of re-owned rows.
func (r *quoteRepository) ClaimByEmail(ctx context.Context, email string, customerID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Quote{}).
		Where("customer_email = ? AND customer_id IS NULL", email).
		Update("customer_id", customerID)
	return res.RowsAffected, res.Error
}

// NextQuoteNumber allocates the next sequential quote number.
func (r *quoteRepository) NextQuoteNumber(ctx context.Context) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&model.Quote{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("Q-%06d", count+1), nil
}
