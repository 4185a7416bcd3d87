package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/model"
	"freightdesk/internal/service"
)

// AdminOrdersHandler handles the admin order CRUD and lifecycle endpoints.
// Every method calls RequireAdmin first and maps Unauthorized to 401 and
// Forbidden to 403 via respondError; list responses are wrapper objects,
// never bare arrays.
type AdminOrdersHandler struct {
	authService  service.AuthService
	orderService service.OrderService
}

// NewAdminOrdersHandler creates a new admin orders handler.
func NewAdminOrdersHandler(authService service.AuthService, orderService service.OrderService) *AdminOrdersHandler {
	return &AdminOrdersHandler{authService: authService, orderService: orderService}
}

// OrderItemRequest is a line item on an order creation request.
type OrderItemRequest struct {
	ProductID   *uint           `json:"product_id"`
	Description string          `json:"description" validate:"required"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents an admin order creation request.
type CreateOrderRequest struct {
	CustomerID    *uint              `json:"customer_id"`
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerEmail string             `json:"customer_email" validate:"required,email"`
	Origin        string             `json:"origin"`
	Destination   string             `json:"destination"`
	Currency      string             `json:"currency" validate:"omitempty,len=3"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Items         []OrderItemRequest `json:"items" validate:"dive"`
}

// UpdateOrderRequest represents an admin order update request.
type UpdateOrderRequest struct {
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email" validate:"omitempty,email"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// ChangeStatusRequest represents a single-order status transition request.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

// BulkStatusRequest represents a bulk status transition request.
type BulkStatusRequest struct {
	IDs    []uint `json:"ids" validate:"required,min=1"`
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

// RecordPaymentRequest represents a payment recorded against an order.
type RecordPaymentRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Currency string          `json:"currency" validate:"omitempty,len=3"`
	Method   string          `json:"method"`
	Type     string          `json:"type" validate:"omitempty,oneof=deposit balance full"`
	Status   string          `json:"status" validate:"omitempty,oneof=pending completed failed refunded"`
}

// List godoc
// @Summary List all orders
// @Tags admin-orders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/orders [get]
func (h *AdminOrdersHandler) List(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	orders, err := h.orderService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// Create godoc
// @Summary Create an order
// @Tags admin-orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/orders [post]
func (h *AdminOrdersHandler) Create(c echo.Context) error {
	session, err := h.authService.RequireAdmin(c.Request())
	if err != nil {
		return respondError(c, err)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	order, err := h.orderService.Create(c.Request().Context(), service.CreateOrderInput{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Currency:      req.Currency,
		TotalAmount:   req.TotalAmount,
		Items:         items,
	}, session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"order": order})
}

// Get godoc
// @Summary Get an order with items, payments and history
// @Tags admin-orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id} [get]
func (h *AdminOrdersHandler) Get(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	order, err := h.orderService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

// Update godoc
// @Summary Update an order's descriptive fields
// @Tags admin-orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body UpdateOrderRequest true "Order data"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id} [put]
func (h *AdminOrdersHandler) Update(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	order, err := h.orderService.Update(c.Request().Context(), id, service.UpdateOrderInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Origin:        req.Origin,
		Destination:   req.Destination,
		TotalAmount:   req.TotalAmount,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

// Delete godoc
// @Summary Delete an order
// @Tags admin-orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id} [delete]
func (h *AdminOrdersHandler) Delete(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.orderService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// ChangeStatus godoc
// @Summary Transition an order to a new status
// @Tags admin-orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body ChangeStatusRequest true "Target status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (h *AdminOrdersHandler) ChangeStatus(c echo.Context) error {
	session, err := h.authService.RequireAdmin(c.Request())
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req ChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	order, err := h.orderService.ChangeStatus(c.Request().Context(), id, model.OrderStatus(req.Status), req.Note, session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

// BulkChangeStatus godoc
// @Summary Transition a set of orders to one status
// @Tags admin-orders
// @Accept json
// @Produce json
// @Param request body BulkStatusRequest true "Order ids and target status"
// @Success 200 {object} map[string]int
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/orders/bulk [patch]
func (h *AdminOrdersHandler) BulkChangeStatus(c echo.Context) error {
	session, err := h.authService.RequireAdmin(c.Request())
	if err != nil {
		return respondError(c, err)
	}

	var req BulkStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	updated, err := h.orderService.BulkChangeStatus(c.Request().Context(), req.IDs, model.OrderStatus(req.Status), req.Note, session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}

// RecordPayment godoc
// @Summary Record a payment against an order
// @Tags admin-orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body RecordPaymentRequest true "Payment data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id}/payments [post]
func (h *AdminOrdersHandler) RecordPayment(c echo.Context) error {
	session, err := h.authService.RequireAdmin(c.Request())
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	order, payment, err := h.orderService.RecordPayment(c.Request().Context(), id, service.RecordPaymentInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Method:   req.Method,
		Type:     model.PaymentType(req.Type),
		Status:   model.PaymentStatus(req.Status),
	}, session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"order": order, "payment": payment})
}
