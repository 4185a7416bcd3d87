package service

import (
	"context"

	"freightdesk/internal/model"
	"freightdesk/internal/repository"
)

// PaymentService exposes read access to recorded payments for the admin
// area. Writing payments goes through OrderService.RecordPayment so the
// order's derived amounts stay consistent.
type PaymentService interface {
	List(ctx context.Context) ([]model.Payment, error)
	Get(ctx context.Context, id uint) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID uint) ([]model.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo repository.PaymentRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo}
}

// List lists all payments.
func (s *paymentService) List(ctx context.Context) ([]model.Payment, error) {
	return s.paymentRepo.List(ctx)
}

// Get returns a payment by id.
func (s *paymentService) Get(ctx context.Context, id uint) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return payment, nil
}

// ListByOrder lists payments recorded against an order.
func (s *paymentService) ListByOrder(ctx context.Context, orderID uint) ([]model.Payment, error) {
	return s.paymentRepo.ListByOrder(ctx, orderID)
}
