package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"freightdesk/internal/auth"
	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/model"
	"freightdesk/internal/repository"
)

// LeadIDPrefix keys pseudo-customers derived from anonymous activity.
const LeadIDPrefix = "lead-"

// Customer is the CRM view: registered accounts plus leads. Leads are
// derived from quotes and orders that carry no account link; their ID is
// "lead-<email>" until the visitor signs up and the rows are re-owned.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Lead    bool   `json:"lead"`
	Quotes  int    `json:"quotes"`
	Orders  int    `json:"orders"`
}

// CustomerDetail is a single customer with their activity.
type CustomerDetail struct {
	Customer Customer      `json:"customer"`
	Quotes   []model.Quote `json:"quotes"`
	Orders   []model.Order `json:"orders"`
}

// UpdateCustomerInput carries the account fields an admin may edit.
type UpdateCustomerInput struct {
	Name    string
	Phone   string
	Company string
}

// CustomerService merges accounts and leads into the CRM customer view.
type CustomerService interface {
	List(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, id string) (*CustomerDetail, error)
	Update(ctx context.Context, id string, input UpdateCustomerInput) (*model.User, error)
}

type customerService struct {
	userRepo  repository.UserRepository
	quoteRepo repository.QuoteRepository
	orderRepo repository.OrderRepository
}

// NewCustomerService creates a new customer service.
func NewCustomerService(userRepo repository.UserRepository, quoteRepo repository.QuoteRepository, orderRepo repository.OrderRepository) CustomerService {
	return &customerService{userRepo: userRepo, quoteRepo: quoteRepo, orderRepo: orderRepo}
}

// List returns registered customers followed by leads, each with activity
// counts.
func (s *customerService) List(ctx context.Context) ([]Customer, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	leadQuotes, err := s.quoteRepo.ListUnclaimed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unclaimed quotes: %w", err)
	}
	leadOrders, err := s.orderRepo.ListUnclaimed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unclaimed orders: %w", err)
	}

	quotesByCustomer := map[uint]int{}
	for _, q := range quotes {
		if q.CustomerID != nil {
			quotesByCustomer[*q.CustomerID]++
		}
	}
	ordersByCustomer := map[uint]int{}
	for _, o := range orders {
		if o.CustomerID != nil {
			ordersByCustomer[*o.CustomerID]++
		}
	}
	quotesByLead := map[string]int{}
	for _, q := range leadQuotes {
		quotesByLead[q.CustomerEmail]++
	}
	ordersByLead := map[string]int{}
	for _, o := range leadOrders {
		ordersByLead[o.CustomerEmail]++
	}

	customers := make([]Customer, 0, len(users))
	for _, u := range users {
		if u.Role == auth.RoleAdmin {
			continue
		}
		customers = append(customers, Customer{
			ID:      strconv.FormatUint(uint64(u.ID), 10),
			Name:    u.Name,
			Email:   u.Email,
			Phone:   u.Phone,
			Company: u.Company,
			Quotes:  quotesByCustomer[u.ID],
			Orders:  ordersByCustomer[u.ID],
		})
	}

	leadEmails := map[string]bool{}
	for email := range quotesByLead {
		leadEmails[email] = true
	}
	for email := range ordersByLead {
		leadEmails[email] = true
	}

	leads := make([]Customer, 0, len(leadEmails))
	for email := range leadEmails {
		lead := Customer{
			ID:     LeadIDPrefix + email,
			Email:  email,
			Lead:   true,
			Quotes: quotesByLead[email],
			Orders: ordersByLead[email],
		}
		// Use the most recent submission's name for display; an
		// order-only lead falls back to the order's customer name.
		for _, q := range leadQuotes {
			if q.CustomerEmail == email {
				lead.Name = q.CustomerName
				lead.Phone = q.CustomerPhone
				lead.Company = q.Company
				break
			}
		}
		if lead.Name == "" {
			for _, o := range leadOrders {
				if o.CustomerEmail == email {
					lead.Name = o.CustomerName
					break
				}
			}
		}
		leads = append(leads, lead)
	}
	sort.Slice(leads, func(i, j int) bool { return leads[i].Email < leads[j].Email })

	return append(customers, leads...), nil
}

// Get returns one customer, either an account (numeric id) or a lead
// ("lead-<email>"), with their quotes and orders.
func (s *customerService) Get(ctx context.Context, id string) (*CustomerDetail, error) {
	if email, ok := strings.CutPrefix(id, LeadIDPrefix); ok {
		return s.getLead(ctx, email)
	}

	userID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer id", apperrors.ErrValidation)
	}
	user, err := s.userRepo.FindByID(ctx, uint(userID))
	if err != nil {
		return nil, asNotFound(err)
	}

	quotes, err := s.quoteRepo.ListByCustomer(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	orders, err := s.orderRepo.ListByCustomer(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &CustomerDetail{
		Customer: Customer{
			ID:      strconv.FormatUint(uint64(user.ID), 10),
			Name:    user.Name,
			Email:   user.Email,
			Phone:   user.Phone,
			Company: user.Company,
			Quotes:  len(quotes),
			Orders:  len(orders),
		},
		Quotes: quotes,
		Orders: orders,
	}, nil
}

func (s *customerService) getLead(ctx context.Context, email string) (*CustomerDetail, error) {
	quotes, err := s.quoteRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	orders, err := s.orderRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	detail := &CustomerDetail{
		Customer: Customer{ID: LeadIDPrefix + email, Email: email, Lead: true},
	}
	unclaimedQuotes := quotes[:0:0]
	for _, q := range quotes {
		if q.CustomerID != nil {
			continue
		}
		if detail.Customer.Name == "" {
			detail.Customer.Name = q.CustomerName
			detail.Customer.Phone = q.CustomerPhone
			detail.Customer.Company = q.Company
		}
		unclaimedQuotes = append(unclaimedQuotes, q)
	}
	unclaimedOrders := orders[:0:0]
	for _, o := range orders {
		if o.CustomerID != nil {
			continue
		}
		if detail.Customer.Name == "" {
			detail.Customer.Name = o.CustomerName
		}
		unclaimedOrders = append(unclaimedOrders, o)
	}
	if len(unclaimedQuotes) == 0 && len(unclaimedOrders) == 0 {
		return nil, apperrors.ErrNotFound
	}

	detail.Quotes = unclaimedQuotes
	detail.Customer.Quotes = len(unclaimedQuotes)
	detail.Orders = unclaimedOrders
	detail.Customer.Orders = len(unclaimedOrders)
	return detail, nil
}

// Update edits a registered customer account. Leads cannot be edited; they
// only exist as derived rows.
func (s *customerService) Update(ctx context.Context, id string, input UpdateCustomerInput) (*model.User, error) {
	if strings.HasPrefix(id, LeadIDPrefix) {
		return nil, fmt.Errorf("%w: leads cannot be edited", apperrors.ErrValidation)
	}
	userID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer id", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindByID(ctx, uint(userID))
	if err != nil {
		return nil, asNotFound(err)
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Company != "" {
		user.Company = input.Company
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
