package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/model"
	"freightdesk/internal/service"
)

// AdminQuotesHandler handles the admin quote workflow.
type AdminQuotesHandler struct {
	authService  service.AuthService
	quoteService service.QuoteService
}

// NewAdminQuotesHandler creates a new admin quotes handler.
func NewAdminQuotesHandler(authService service.AuthService, quoteService service.QuoteService) *AdminQuotesHandler {
	return &AdminQuotesHandler{authService: authService, quoteService: quoteService}
}

// UpdateQuoteRequest represents an admin quote update.
type UpdateQuoteRequest struct {
	Status       string          `json:"status" validate:"omitempty,oneof=pending quoted accepted rejected expired"`
	QuotedAmount decimal.Decimal `json:"quoted_amount"`
	Currency     string          `json:"currency" validate:"omitempty,len=3"`
	Notes        string          `json:"notes"`
}

// List godoc
// @Summary List all quote requests
// @Tags admin-quotes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/quotes [get]
func (h *AdminQuotesHandler) List(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	quotes, err := h.quoteService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"quotes": quotes})
}

// Create godoc
// @Summary Create a quote request on behalf of a customer
// @Tags admin-quotes
// @Accept json
// @Produce json
// @Param request body SubmitQuoteRequest true "Quote request"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/quotes [post]
func (h *AdminQuotesHandler) Create(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	var req SubmitQuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	// The quote is filed under the customer's email, not the admin's
	// session, so it shows up as a lead until that customer registers.
	quote, err := h.quoteService.Submit(c.Request().Context(), service.SubmitQuoteInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Company:          req.Company,
		Origin:           req.Origin,
		Destination:      req.Destination,
		Mode:             req.Mode,
		CargoDescription: req.CargoDescription,
		WeightKg:         req.WeightKg,
		VolumeCbm:        req.VolumeCbm,
		Notes:            req.Notes,
	}, nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"quote": quote})
}

// Get godoc
// @Summary Get a quote request
// @Tags admin-quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/quotes/{id} [get]
func (h *AdminQuotesHandler) Get(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	quote, err := h.quoteService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"quote": quote})
}

// Update godoc
// @Summary Update a quote's status, pricing or notes
// @Tags admin-quotes
// @Accept json
// @Produce json
// @Param id path int true "Quote ID"
// @Param request body UpdateQuoteRequest true "Quote data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/quotes/{id} [put]
func (h *AdminQuotesHandler) Update(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateQuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	quote, err := h.quoteService.Update(c.Request().Context(), id, service.UpdateQuoteInput{
		Status:       model.QuoteStatus(req.Status),
		QuotedAmount: req.QuotedAmount,
		Currency:     req.Currency,
		Notes:        req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"quote": quote})
}

// Delete godoc
// @Summary Delete a quote request
// @Tags admin-quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/quotes/{id} [delete]
func (h *AdminQuotesHandler) Delete(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.quoteService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Convert godoc
// @Summary Convert a quoted request into an order
// @Tags admin-quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/quotes/{id}/convert [post]
func (h *AdminQuotesHandler) Convert(c echo.Context) error {
	session, err := h.authService.RequireAdmin(c.Request())
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	order, err := h.quoteService.ConvertToOrder(c.Request().Context(), id, session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"order": order})
}
