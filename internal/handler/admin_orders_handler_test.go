package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"freightdesk/internal/auth"
	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/model"
	"freightdesk/internal/service"
)

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, input service.CreateOrderInput, actor *auth.Session) (*model.Order, error) {
	args := m.Called(ctx, input, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, id uint, input service.UpdateOrderInput) (*model.Order, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) ListForCustomer(ctx context.Context, customerID uint) ([]model.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) GetForCustomer(ctx context.Context, id, customerID uint) (*model.Order, error) {
	args := m.Called(ctx, id, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ChangeStatus(ctx context.Context, id uint, status model.OrderStatus, note string, actor *auth.Session) (*model.Order, error) {
	args := m.Called(ctx, id, status, note, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) BulkChangeStatus(ctx context.Context, ids []uint, status model.OrderStatus, note string, actor *auth.Session) (int, error) {
	args := m.Called(ctx, ids, status, note, actor)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderService) RecordPayment(ctx context.Context, orderID uint, input service.RecordPaymentInput, actor *auth.Session) (*model.Order, *model.Payment, error) {
	args := m.Called(ctx, orderID, input, actor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).(*model.Payment), args.Error(2)
}

func adminSession() *auth.Session {
	return &auth.Session{UserID: 1, Email: "admin@example.com", Name: "Admin", Role: auth.RoleAdmin}
}

func TestAdminOrdersHandler_List_AuthMapping(t *testing.T) {
	tests := []struct {
		name       string
		requireErr error
		wantStatus int
		wantBody   string
	}{
		{name: "anonymous", requireErr: apperrors.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
		{name: "non-admin", requireErr: apperrors.ErrForbidden, wantStatus: http.StatusForbidden, wantBody: "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := new(MockAuthService)
			orderSvc := new(MockOrderService)
			authSvc.On("RequireAdmin", mock.Anything).Return(nil, tt.requireErr)

			h := NewAdminOrdersHandler(authSvc, orderSvc)
			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			rec := httptest.NewRecorder()

			require.NoError(t, h.List(newTestEcho().NewContext(req, rec)))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			orderSvc.AssertNotCalled(t, "List", mock.Anything)
		})
	}
}

func TestAdminOrdersHandler_List_WrapsOrders(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	authSvc.On("RequireAdmin", mock.Anything).Return(adminSession(), nil)
	orderSvc.On("List", mock.Anything).Return([]model.Order{{OrderNumber: "FF-000001"}}, nil)

	h := NewAdminOrdersHandler(authSvc, orderSvc)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.List(newTestEcho().NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"orders"`)
	assert.Contains(t, rec.Body.String(), "FF-000001")
}

func TestAdminOrdersHandler_ChangeStatus(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	session := adminSession()
	authSvc.On("RequireAdmin", mock.Anything).Return(session, nil)
	orderSvc.On("ChangeStatus", mock.Anything, uint(7), model.OrderStatusInTransit, "vessel departed", session).
		Return(&model.Order{OrderNumber: "FF-000007", Status: model.OrderStatusInTransit}, nil)

	h := NewAdminOrdersHandler(authSvc, orderSvc)
	c, rec := postJSON(newTestEcho(), "/api/admin/orders/7/status", `{"status":"in_transit","note":"vessel departed"}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.ChangeStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "in_transit")
}

func TestAdminOrdersHandler_ChangeStatus_InvalidStatus(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	authSvc.On("RequireAdmin", mock.Anything).Return(adminSession(), nil)
	orderSvc.On("ChangeStatus", mock.Anything, uint(7), model.OrderStatus("teleported"), "", mock.Anything).
		Return(nil, apperrors.ErrInvalidStatus)

	h := NewAdminOrdersHandler(authSvc, orderSvc)
	c, rec := postJSON(newTestEcho(), "/api/admin/orders/7/status", `{"status":"teleported"}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.ChangeStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_STATUS")
}

func TestAdminOrdersHandler_BulkChangeStatus(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	session := adminSession()
	authSvc.On("RequireAdmin", mock.Anything).Return(session, nil)
	orderSvc.On("BulkChangeStatus", mock.Anything, []uint{1, 2, 3}, model.OrderStatusInTransit, "", session).
		Return(2, nil)

	h := NewAdminOrdersHandler(authSvc, orderSvc)
	c, rec := postJSON(newTestEcho(), "/api/admin/orders/bulk", `{"ids":[1,2,3],"status":"in_transit"}`)

	require.NoError(t, h.BulkChangeStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated":2`)
}

func TestAdminOrdersHandler_BulkChangeStatus_MissingIDs(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	authSvc.On("RequireAdmin", mock.Anything).Return(adminSession(), nil)

	h := NewAdminOrdersHandler(authSvc, orderSvc)
	c, rec := postJSON(newTestEcho(), "/api/admin/orders/bulk", `{"status":"in_transit"}`)

	require.NoError(t, h.BulkChangeStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	orderSvc.AssertNotCalled(t, "BulkChangeStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrdersHandler_RecordPayment(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	session := adminSession()
	authSvc.On("RequireAdmin", mock.Anything).Return(session, nil)
	orderSvc.On("RecordPayment", mock.Anything, uint(3), mock.AnythingOfType("service.RecordPaymentInput"), session).
		Return(
			&model.Order{OrderNumber: "FF-000003", Status: model.OrderStatusConfirmed, BalanceDue: decimal.NewFromInt(875)},
			&model.Payment{PaymentNumber: "PAY-000010", Amount: decimal.NewFromInt(375)},
			nil,
		)

	h := NewAdminOrdersHandler(authSvc, orderSvc)
	c, rec := postJSON(newTestEcho(), "/api/admin/orders/3/payments", `{"amount":375,"method":"bank_transfer"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.RecordPayment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "PAY-000010")
	assert.Contains(t, rec.Body.String(), `"order"`)
}

func TestAdminOrdersHandler_Get_InvalidID(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("RequireAdmin", mock.Anything).Return(adminSession(), nil)

	h := NewAdminOrdersHandler(authSvc, new(MockOrderService))
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminOrdersHandler_Get_NotFound(t *testing.T) {
	authSvc := new(MockAuthService)
	orderSvc := new(MockOrderService)
	authSvc.On("RequireAdmin", mock.Anything).Return(adminSession(), nil)
	orderSvc.On("Get", mock.Anything, uint(99)).Return(nil, apperrors.ErrNotFound)

	h := NewAdminOrdersHandler(authSvc, orderSvc)
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
