package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"freightdesk/internal/auth"
	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/mail"
	"freightdesk/internal/model"
	"freightdesk/internal/repository"
)

// SubmitQuoteInput carries a public quote request. Anonymous submissions
// become leads addressable by email until the visitor registers.
type SubmitQuoteInput struct {
	Name             string
	Email            string
	Phone            string
	Company          string
	Origin           string
	Destination      string
	Mode             string
	CargoDescription string
	WeightKg         decimal.Decimal
	VolumeCbm        decimal.Decimal
	Notes            string
}

// UpdateQuoteInput carries the fields an admin may change on a quote.
type UpdateQuoteInput struct {
	Status       model.QuoteStatus
	QuotedAmount decimal.Decimal
	Currency     string
	Notes        string
}

// QuoteService handles quote intake and the admin quote workflow.
type QuoteService interface {
	Submit(ctx context.Context, input SubmitQuoteInput, session *auth.Session) (*model.Quote, error)
	List(ctx context.Context) ([]model.Quote, error)
	Get(ctx context.Context, id uint) (*model.Quote, error)
	Update(ctx context.Context, id uint, input UpdateQuoteInput) (*model.Quote, error)
	Delete(ctx context.Context, id uint) error
	ListForCustomer(ctx context.Context, customerID uint) ([]model.Quote, error)
	ConvertToOrder(ctx context.Context, id uint, actor *auth.Session) (*model.Order, error)
}

type quoteService struct {
	quoteRepo    repository.QuoteRepository
	orderService OrderService
	mailer       mail.Mailer
	logger       *zap.Logger
}

// NewQuoteService creates a new quote service.
func NewQuoteService(quoteRepo repository.QuoteRepository, orderService OrderService, mailer mail.Mailer, logger *zap.Logger) QuoteService {
	return &quoteService{
		quoteRepo:    quoteRepo,
		orderService: orderService,
		mailer:       mailer,
		logger:       logger,
	}
}

// Submit stores a quote request. When the request carries a session the
// quote is linked to that account immediately; otherwise it stays a lead.
func (s *quoteService) Submit(ctx context.Context, input SubmitQuoteInput, session *auth.Session) (*model.Quote, error) {
	if input.Email == "" || input.Origin == "" || input.Destination == "" {
		return nil, fmt.Errorf("%w: email, origin and destination are required", apperrors.ErrValidation)
	}

	number, err := s.quoteRepo.NextQuoteNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("next quote number: %w", err)
	}

	mode := input.Mode
	if mode == "" {
		mode = "sea"
	}

	quote := &model.Quote{
		QuoteNumber:      number,
		Status:           model.QuoteStatusPending,
		CustomerName:     input.Name,
		CustomerEmail:    normalizeEmail(input.Email),
		CustomerPhone:    input.Phone,
		Company:          input.Company,
		Origin:           input.Origin,
		Destination:      input.Destination,
		Mode:             mode,
		CargoDescription: input.CargoDescription,
		WeightKg:         input.WeightKg,
		VolumeCbm:        input.VolumeCbm,
		Currency:         "USD",
		Notes:            input.Notes,
	}
	if session != nil {
		quote.CustomerID = &session.UserID
		if quote.CustomerName == "" {
			quote.CustomerName = session.Name
		}
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	if err := s.mailer.QuoteReceived(ctx, quote); err != nil {
		s.logger.Warn("quote mail failed",
			zap.String("quote_number", quote.QuoteNumber), zap.Error(err))
	}
	return quote, nil
}

// List lists all quotes.
func (s *quoteService) List(ctx context.Context) ([]model.Quote, error) {
	return s.quoteRepo.List(ctx)
}

// Get returns a quote by id.
func (s *quoteService) Get(ctx context.Context, id uint) (*model.Quote, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return quote, nil
}

// Update changes the admin-editable fields of a quote.
func (s *quoteService) Update(ctx context.Context, id uint, input UpdateQuoteInput) (*model.Quote, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	if input.Status != "" {
		quote.Status = input.Status
	}
	if !input.QuotedAmount.IsZero() {
		quote.QuotedAmount = input.QuotedAmount
	}
	if input.Currency != "" {
		quote.Currency = input.Currency
	}
	if input.Notes != "" {
		quote.Notes = input.Notes
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}
	return quote, nil
}

// Delete soft-deletes a quote.
func (s *quoteService) Delete(ctx context.Context, id uint) error {
	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		return asNotFound(err)
	}
	return nil
}

// ListForCustomer lists quotes owned by a customer account.
func (s *quoteService) ListForCustomer(ctx context.Context, customerID uint) ([]model.Quote, error) {
	return s.quoteRepo.ListByCustomer(ctx, customerID)
}

// ConvertToOrder creates an order from a quote, carrying over the customer
// linkage and the quoted amount, and marks the quote accepted.
func (s *quoteService) ConvertToOrder(ctx context.Context, id uint, actor *auth.Session) (*model.Order, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if quote.QuotedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quote has no quoted amount", apperrors.ErrValidation)
	}

	order, err := s.orderService.Create(ctx, CreateOrderInput{
		CustomerID:    quote.CustomerID,
		CustomerName:  quote.CustomerName,
		CustomerEmail: quote.CustomerEmail,
		Origin:        quote.Origin,
		Destination:   quote.Destination,
		Currency:      quote.Currency,
		TotalAmount:   quote.QuotedAmount,
		Items: []OrderItemInput{{
			Description: fmt.Sprintf("Freight %s -> %s (%s), quote %s", quote.Origin, quote.Destination, quote.Mode, quote.QuoteNumber),
			Quantity:    1,
			UnitPrice:   quote.QuotedAmount,
		}},
	}, actor)
	if err != nil {
		return nil, err
	}

	quote.Status = model.QuoteStatusAccepted
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		// The order exists; losing the quote flag is recoverable from the admin UI.
		s.logger.Warn("mark quote accepted failed",
			zap.String("quote_number", quote.QuoteNumber), zap.Error(err))
	}
	return order, nil
}
