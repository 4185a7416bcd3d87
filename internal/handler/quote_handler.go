package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/ratelimit"
	"freightdesk/internal/service"
)

// QuoteHandler handles the public quote-request endpoint. Submissions are
// rate limited per source IP since the endpoint accepts anonymous traffic.
type QuoteHandler struct {
	quoteService service.QuoteService
	authService  service.AuthService
	limiter      ratelimit.Limiter
}

// NewQuoteHandler creates a new public quote handler.
func NewQuoteHandler(quoteService service.QuoteService, authService service.AuthService, limiter ratelimit.Limiter) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		authService:  authService,
		limiter:      limiter,
	}
}

// SubmitQuoteRequest represents a public quote request.
type SubmitQuoteRequest struct {
	Name             string          `json:"name" validate:"required"`
	Email            string          `json:"email" validate:"required,email"`
	Phone            string          `json:"phone"`
	Company          string          `json:"company"`
	Origin           string          `json:"origin" validate:"required"`
	Destination      string          `json:"destination" validate:"required"`
	Mode             string          `json:"mode" validate:"omitempty,oneof=sea air rail road"`
	CargoDescription string          `json:"cargo_description"`
	WeightKg         decimal.Decimal `json:"weight_kg"`
	VolumeCbm        decimal.Decimal `json:"volume_cbm"`
	Notes            string          `json:"notes"`
}

// Submit godoc
// @Summary Submit a freight quote request
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body SubmitQuoteRequest true "Quote request"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) Submit(c echo.Context) error {
	if !h.limiter.Allow(c.Request().Context(), "quote:"+c.RealIP()) {
		return respondError(c, apperrors.ErrRateLimited)
	}

	var req SubmitQuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	// A logged-in submitter gets the quote linked to their account;
	// anonymous submissions stay leads until signup.
	session := h.authService.SessionFromRequest(c.Request())

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
	}, session)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"quote": quote})
}
