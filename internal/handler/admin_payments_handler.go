package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"freightdesk/internal/service"
)

// AdminPaymentsHandler exposes read access to recorded payments. Recording
// payments is an order operation; see AdminOrdersHandler.RecordPayment.
type AdminPaymentsHandler struct {
	authService    service.AuthService
	paymentService service.PaymentService
}

// NewAdminPaymentsHandler creates a new admin payments handler.
func NewAdminPaymentsHandler(authService service.AuthService, paymentService service.PaymentService) *AdminPaymentsHandler {
	return &AdminPaymentsHandler{authService: authService, paymentService: paymentService}
}

// List godoc
// @Summary List payments, optionally filtered by order
// @Tags admin-payments
// @Produce json
// @Param order_id query int false "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/payments [get]
func (h *AdminPaymentsHandler) List(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	if c.QueryParam("order_id") != "" {
		orderID, err := parseQueryID(c, "order_id")
		if err != nil {
			return respondError(c, err)
		}
		payments, err := h.paymentService.ListByOrder(c.Request().Context(), orderID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"payments": payments})
	}

	payments, err := h.paymentService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": payments})
}

// Get godoc
// @Summary Get a payment
// @Tags admin-payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/payments/{id} [get]
func (h *AdminPaymentsHandler) Get(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	payment, err := h.paymentService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"payment": payment})
}
