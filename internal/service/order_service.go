package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"freightdesk/internal/auth"
	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/mail"
	"freightdesk/internal/model"
	"freightdesk/internal/repository"
)

// DefaultBulkNote is the history note applied to bulk status changes when
// the caller supplies none.
const DefaultBulkNote = "bulk status update"

// OrderItemInput is a line item on a new order.
type OrderItemInput struct {
	ProductID   *uint
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateOrderInput carries the fields accepted when an admin creates an order.
type CreateOrderInput struct {
	CustomerID    *uint
	CustomerName  string
	CustomerEmail string
	Origin        string
	Destination   string
	Currency      string
	TotalAmount   decimal.Decimal
	Items         []OrderItemInput
}

// UpdateOrderInput carries the mutable descriptive fields of an order.
// Status is deliberately absent: transitions go through ChangeStatus so the
// history invariant cannot be bypassed.
type UpdateOrderInput struct {
	CustomerName  string
	CustomerEmail string
	Origin        string
	Destination   string
	TotalAmount   decimal.Decimal
}

// RecordPaymentInput carries the fields of a payment recorded against an order.
type RecordPaymentInput struct {
	Amount   decimal.Decimal
	Currency string
	Method   string
	Type     model.PaymentType
	Status   model.PaymentStatus
}

// OrderService owns the order lifecycle: status transitions with their
// append-only history, bulk updates, and payment recording with derived
// balance recomputation.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput, actor *auth.Session) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id uint) (*model.Order, error)
	Update(ctx context.Context, id uint, input UpdateOrderInput) (*model.Order, error)
	Delete(ctx context.Context, id uint) error
	ListForCustomer(ctx context.Context, customerID uint) ([]model.Order, error)
	GetForCustomer(ctx context.Context, id, customerID uint) (*model.Order, error)
	ChangeStatus(ctx context.Context, id uint, status model.OrderStatus, note string, actor *auth.Session) (*model.Order, error)
	BulkChangeStatus(ctx context.Context, ids []uint, status model.OrderStatus, note string, actor *auth.Session) (int, error)
	RecordPayment(ctx context.Context, orderID uint, input RecordPaymentInput, actor *auth.Session) (*model.Order, *model.Payment, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	mailer    mail.Mailer
	logger    *zap.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, mailer mail.Mailer, logger *zap.Logger) OrderService {
	return &orderService{orderRepo: orderRepo, mailer: mailer, logger: logger}
}

// Create creates an order in status pending with a sequential order number.
// A zero total is computed from the line items.
func (s *orderService) Create(ctx context.Context, input CreateOrderInput, actor *auth.Session) (*model.Order, error) {
	if input.CustomerEmail == "" || input.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name and email are required", apperrors.ErrValidation)
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	total := input.TotalAmount
	items := make([]model.OrderItem, 0, len(input.Items))
	itemSum := decimal.Zero
	for _, it := range input.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		items = append(items, model.OrderItem{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    qty,
			UnitPrice:   it.UnitPrice,
		})
		itemSum = itemSum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(qty))))
	}
	if total.IsZero() {
		total = itemSum
	}

	var order *model.Order
	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.OrderRepository) error {
		number, err := repo.NextOrderNumber(ctx)
		if err != nil {
			return fmt.Errorf("next order number: %w", err)
		}

		order = &model.Order{
			OrderNumber:   number,
			Status:        model.OrderStatusPending,
			CustomerID:    input.CustomerID,
			CustomerName:  input.CustomerName,
			CustomerEmail: normalizeEmail(input.CustomerEmail),
			Origin:        input.Origin,
			Destination:   input.Destination,
			Currency:      currency,
			TotalAmount:   total,
			DepositAmount: decimal.Zero,
			BalanceDue:    total,
			Items:         items,
		}
		if err := repo.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		return repo.AppendHistory(ctx, &model.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    model.OrderStatusPending,
			Note:      "order created",
			ChangedBy: actor.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// List lists all orders.
func (s *orderService) List(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.List(ctx)
}

// Get returns an order with items, payments and history.
func (s *orderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return order, nil
}

// Update changes the descriptive fields of an order. Recomputes balance due
// when the total changes.
func (s *orderService) Update(ctx context.Context, id uint, input UpdateOrderInput) (*model.Order, error) {
	var updated *model.Order
	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.OrderRepository) error {
		order, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return asNotFound(err)
		}

		if input.CustomerName != "" {
			order.CustomerName = input.CustomerName
		}
		if input.CustomerEmail != "" {
			order.CustomerEmail = normalizeEmail(input.CustomerEmail)
		}
		if input.Origin != "" {
			order.Origin = input.Origin
		}
		if input.Destination != "" {
			order.Destination = input.Destination
		}
		if !input.TotalAmount.IsZero() {
			order.TotalAmount = input.TotalAmount
			order.BalanceDue = order.TotalAmount.Sub(order.DepositAmount)
		}

		if err := repo.Update(ctx, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes an order.
func (s *orderService) Delete(ctx context.Context, id uint) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return asNotFound(err)
	}
	return nil
}

// ListForCustomer lists the orders owned by a customer account.
func (s *orderService) ListForCustomer(ctx context.Context, customerID uint) ([]model.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}

// GetForCustomer returns an order only if it belongs to the customer.
// Non-owned orders are indistinguishable from missing ones.
func (s *orderService) GetForCustomer(ctx context.Context, id, customerID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if order.CustomerID == nil || *order.CustomerID != customerID {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

// ChangeStatus transitions an order to a new status. Reapplying the current
// status is a no-op: no history row, no notification. A real transition
// updates the order and appends exactly one history row in the same
// transaction; delivered and closed additionally stamp ClosedAt. The
// notification fires after commit and its failure is logged, never returned.
func (s *orderService) ChangeStatus(ctx context.Context, id uint, status model.OrderStatus, note string, actor *auth.Session) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	var updated *model.Order
	changed := false
	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.OrderRepository) error {
		order, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return asNotFound(err)
		}

		if order.Status == status {
			updated = order
			return nil
		}

		order.Status = status
		if status.Terminal() {
			now := time.Now()
			order.ClosedAt = &now
		}
		if err := repo.Update(ctx, order); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if err := repo.AppendHistory(ctx, &model.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    status,
			Note:      note,
			ChangedBy: actor.Name,
		}); err != nil {
			return fmt.Errorf("append status history: %w", err)
		}

		updated = order
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.notifyStatusChange(ctx, updated, note)
	}
	return updated, nil
}

// BulkChangeStatus applies one target status to a set of orders in a single
// transaction. An unrecognized status rejects the whole batch before any row
// is touched. Orders already in the target status are skipped so the
// idempotence invariant holds, and only changed orders count toward the
// result.
func (s *orderService) BulkChangeStatus(ctx context.Context, ids []uint, status model.OrderStatus, note string, actor *auth.Session) (int, error) {
	if !model.ValidOrderStatus(status) {
		return 0, apperrors.ErrInvalidStatus
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no order ids given", apperrors.ErrValidation)
	}
	if note == "" {
		note = DefaultBulkNote
	}

	var changed []*model.Order
	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.OrderRepository) error {
		orders, err := repo.ListByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}

		for i := range orders {
			order := &orders[i]
			if order.Status == status {
				continue
			}
			order.Status = status
			if status.Terminal() {
				now := time.Now()
				order.ClosedAt = &now
			}
			if err := repo.Update(ctx, order); err != nil {
				return fmt.Errorf("update order %d: %w", order.ID, err)
			}
			if err := repo.AppendHistory(ctx, &model.OrderStatusHistory{
				OrderID:   order.ID,
				Status:    status,
				Note:      note,
				ChangedBy: actor.Name,
			}); err != nil {
				return fmt.Errorf("append status history for order %d: %w", order.ID, err)
			}
			changed = append(changed, order)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, order := range changed {
		s.notifyStatusChange(ctx, order, note)
	}
	return len(changed), nil
}

// RecordPayment records a payment and recomputes the order's derived
// amounts inside one transaction with the order row locked: deposit is the
// sum of all completed payments, balance due is total minus deposit. The
// first payment against a pending order promotes it to confirmed; a more
// advanced status is never regressed.
func (s *orderService) RecordPayment(ctx context.Context, orderID uint, input RecordPaymentInput, actor *auth.Session) (*model.Order, *model.Payment, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = model.PaymentStatusCompleted
	}
	paymentType := input.Type
	if paymentType == "" {
		paymentType = model.PaymentTypeDeposit
	}

	var (
		updated  *model.Order
		payment  *model.Payment
		promoted bool
	)
	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.OrderRepository) error {
		order, err := repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return asNotFound(err)
		}

		currency := input.Currency
		if currency == "" {
			currency = order.Currency
		}

		number, err := repo.NextPaymentNumber(ctx)
		if err != nil {
			return fmt.Errorf("next payment number: %w", err)
		}

		payment = &model.Payment{
			PaymentNumber: number,
			OrderID:       order.ID,
			Amount:        input.Amount,
			Currency:      currency,
			Method:        input.Method,
			Status:        status,
			Type:          paymentType,
		}
		if status == model.PaymentStatusCompleted {
			now := time.Now()
			payment.PaidAt = &now
		}
		if err := repo.CreatePayment(ctx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		paid, err := repo.SumCompletedPayments(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("sum payments: %w", err)
		}
		order.DepositAmount = paid
		order.BalanceDue = order.TotalAmount.Sub(paid)

		if order.Status == model.OrderStatusPending && paid.GreaterThan(decimal.Zero) {
			order.Status = model.OrderStatusConfirmed
			promoted = true
		}

		if err := repo.Update(ctx, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		if promoted {
			if err := repo.AppendHistory(ctx, &model.OrderStatusHistory{
				OrderID:   order.ID,
				Status:    model.OrderStatusConfirmed,
				Note:      "payment received",
				ChangedBy: actor.Name,
			}); err != nil {
				return fmt.Errorf("append status history: %w", err)
			}
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if err := s.mailer.PaymentReceived(ctx, updated, payment); err != nil {
		s.logger.Warn("payment mail failed",
			zap.String("order_number", updated.OrderNumber), zap.Error(err))
	}
	return updated, payment, nil
}

func (s *orderService) notifyStatusChange(ctx context.Context, order *model.Order, note string) {
	if err := s.mailer.OrderStatusChanged(ctx, order, note); err != nil {
		s.logger.Warn("status mail failed",
			zap.String("order_number", order.OrderNumber),
			zap.String("status", string(order.Status)),
			zap.Error(err))
	}
}

// asNotFound converts gorm's missing-record error into the API taxonomy.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
