package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/model"
	"freightdesk/internal/repository"
)

// ProductInput carries product catalog fields.
type ProductInput struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Currency    string
	Active      *bool
}

// ProductService handles the admin product catalog.
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*model.Product, error)
	Update(ctx context.Context, id uint, input ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// Create adds a catalog entry; duplicate SKUs are rejected as a conflict.
func (s *productService) Create(ctx context.Context, input ProductInput) (*model.Product, error) {
	if input.SKU == "" || input.Name == "" {
		return nil, fmt.Errorf("%w: sku and name are required", apperrors.ErrValidation)
	}

	existing, err := s.productRepo.FindBySKU(ctx, input.SKU)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: sku %s", apperrors.ErrConflict, input.SKU)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check sku: %w", err)
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	product := &model.Product{
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Currency:    currency,
		Active:      active,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Update edits a catalog entry.
func (s *productService) Update(ctx context.Context, id uint, input ProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if !input.Price.IsZero() {
		product.Price = input.Price
	}
	if input.Currency != "" {
		product.Currency = input.Currency
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// Delete soft-deletes a catalog entry.
func (s *productService) Delete(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return asNotFound(err)
	}
	return nil
}

// Get returns a product by id.
func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return product, nil
}

// List lists the catalog.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.List(ctx)
}
