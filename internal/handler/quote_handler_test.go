package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"freightdesk/internal/auth"
	"freightdesk/internal/model"
	"freightdesk/internal/service"
)

// MockQuoteService is a mock implementation of service.QuoteService.
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Submit(ctx context.Context, input service.SubmitQuoteInput, session *auth.Session) (*model.Quote, error) {
	args := m.Called(ctx, input, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteService) List(ctx context.Context) ([]model.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quote), args.Error(1)
}

func (m *MockQuoteService) Get(ctx context.Context, id uint) (*model.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteService) Update(ctx context.Context, id uint, input service.UpdateQuoteInput) (*model.Quote, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuoteService) ListForCustomer(ctx context.Context, customerID uint) ([]model.Quote, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quote), args.Error(1)
}

func (m *MockQuoteService) ConvertToOrder(ctx context.Context, id uint, actor *auth.Session) (*model.Order, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// stubLimiter allows or denies everything.
type stubLimiter struct {
	allow bool
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) bool {
	l.keys = append(l.keys, key)
	return l.allow
}

const quoteBody = `{"name":"Lina","email":"lina@example.com","origin":"Shanghai","destination":"Rotterdam","mode":"sea"}`

func TestQuoteHandler_Submit(t *testing.T) {
	quoteSvc := new(MockQuoteService)
	authSvc := new(MockAuthService)
	limiter := &stubLimiter{allow: true}

	authSvc.On("SessionFromRequest", mock.Anything).Return(nil)
	quoteSvc.On("Submit", mock.Anything, mock.AnythingOfType("service.SubmitQuoteInput"), (*auth.Session)(nil)).
		Return(&model.Quote{QuoteNumber: "Q-000001", Status: model.QuoteStatusPending}, nil)

	h := NewQuoteHandler(quoteSvc, authSvc, limiter)
	c, rec := postJSON(newTestEcho(), "/api/quotes", quoteBody)

	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Q-000001")

	input := quoteSvc.Calls[0].Arguments.Get(1).(service.SubmitQuoteInput)
	assert.Equal(t, "lina@example.com", input.Email)
	assert.Equal(t, "Shanghai", input.Origin)
}

func TestQuoteHandler_Submit_RateLimited(t *testing.T) {
	quoteSvc := new(MockQuoteService)
	limiter := &stubLimiter{allow: false}

	h := NewQuoteHandler(quoteSvc, new(MockAuthService), limiter)
	c, rec := postJSON(newTestEcho(), "/api/quotes", quoteBody)

	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
	quoteSvc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)

	// The key is derived from the caller's IP.
	require.Len(t, limiter.keys, 1)
	assert.Contains(t, limiter.keys[0], "quote:")
}

func TestQuoteHandler_Submit_LinksSession(t *testing.T) {
	quoteSvc := new(MockQuoteService)
	authSvc := new(MockAuthService)
	session := &auth.Session{UserID: 3, Email: "lina@example.com", Role: auth.RoleUser}

	authSvc.On("SessionFromRequest", mock.Anything).Return(session)
	quoteSvc.On("Submit", mock.Anything, mock.AnythingOfType("service.SubmitQuoteInput"), session).
		Return(&model.Quote{QuoteNumber: "Q-000002"}, nil)

	h := NewQuoteHandler(quoteSvc, authSvc, &stubLimiter{allow: true})
	c, rec := postJSON(newTestEcho(), "/api/quotes", quoteBody)

	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	quoteSvc.AssertExpectations(t)
}

func TestQuoteHandler_Submit_InvalidBody(t *testing.T) {
	quoteSvc := new(MockQuoteService)

	h := NewQuoteHandler(quoteSvc, new(MockAuthService), &stubLimiter{allow: true})
	c, rec := postJSON(newTestEcho(), "/api/quotes", `{"email":"lina@example.com"}`)

	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	quoteSvc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}
