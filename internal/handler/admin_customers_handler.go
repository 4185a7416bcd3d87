package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/service"
)

// AdminCustomersHandler exposes the CRM view of customers and leads. IDs
// are strings here because leads are keyed "lead-<email>" rather than by a
// database id.
type AdminCustomersHandler struct {
	authService     service.AuthService
	customerService service.CustomerService
}

// NewAdminCustomersHandler creates a new admin customers handler.
func NewAdminCustomersHandler(authService service.AuthService, customerService service.CustomerService) *AdminCustomersHandler {
	return &AdminCustomersHandler{authService: authService, customerService: customerService}
}

// UpdateCustomerRequest represents an admin edit of a customer account.
type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// List godoc
// @Summary List customers and leads
// @Tags admin-customers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/customers [get]
func (h *AdminCustomersHandler) List(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	customers, err := h.customerService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"customers": customers})
}

// Get godoc
// @Summary Get a customer or lead with their activity
// @Tags admin-customers
// @Produce json
// @Param id path string true "Customer ID or lead-<email>"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/customers/{id} [get]
func (h *AdminCustomersHandler) Get(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	detail, err := h.customerService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Update godoc
// @Summary Update a customer account
// @Tags admin-customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body UpdateCustomerRequest true "Customer data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/customers/{id} [put]
func (h *AdminCustomersHandler) Update(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	var req UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}

	user, err := h.customerService.Update(c.Request().Context(), c.Param("id"), service.UpdateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Company: req.Company,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"customer": user})
}
