package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"freightdesk/internal/service"
)

// AccountHandler handles the customer-facing account area. Every method
// revalidates the session through the auth service; the edge guard and the
// group JWT middleware in front of these routes are not trusted for data
// access.
type AccountHandler struct {
	authService  service.AuthService
	orderService service.OrderService
	quoteService service.QuoteService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(authService service.AuthService, orderService service.OrderService, quoteService service.QuoteService) *AccountHandler {
	return &AccountHandler{
		authService:  authService,
		orderService: orderService,
		quoteService: quoteService,
	}
}

// Profile godoc
// @Summary Return the authenticated customer's profile
// @Tags account
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /account/profile [get]
func (h *AccountHandler) Profile(c echo.Context) error {
	user, err := h.authService.Me(c.Request().Context(), c.Request())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// ListOrders godoc
// @Summary List the authenticated customer's orders
// @Tags account
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /account/orders [get]
func (h *AccountHandler) ListOrders(c echo.Context) error {
	session, err := h.authService.RequireAuth(c.Request())
	if err != nil {
		return respondError(c, err)
	}

	orders, err := h.orderService.ListForCustomer(c.Request().Context(), session.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// GetOrder godoc
// @Summary Get one of the authenticated customer's orders
// @Tags account
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /account/orders/{id} [get]
func (h *AccountHandler) GetOrder(c echo.Context) error {
	session, err := h.authService.RequireAuth(c.Request())
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	order, err := h.orderService.GetForCustomer(c.Request().Context(), id, session.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

// ListQuotes godoc
// @Summary List the authenticated customer's quotes
// @Tags account
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /account/quotes [get]
func (h *AccountHandler) ListQuotes(c echo.Context) error {
	session, err := h.authService.RequireAuth(c.Request())
	if err != nil {
		return respondError(c, err)
	}

	quotes, err := h.quoteService.ListForCustomer(c.Request().Context(), session.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"quotes": quotes})
}
