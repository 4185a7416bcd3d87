package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/service"
)

// AdminProductsHandler handles the admin service catalog.
type AdminProductsHandler struct {
	authService    service.AuthService
	productService service.ProductService
}

// NewAdminProductsHandler creates a new admin products handler.
func NewAdminProductsHandler(authService service.AuthService, productService service.ProductService) *AdminProductsHandler {
	return &AdminProductsHandler{authService: authService, productService: productService}
}

// ProductRequest represents a catalog create or update request.
type ProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	Active      *bool           `json:"active"`
}

// List godoc
// @Summary List the service catalog
// @Tags admin-products
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/products [get]
func (h *AdminProductsHandler) List(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// Create godoc
// @Summary Add a catalog entry
// @Tags admin-products
// @Accept json
// @Produce json
// @Param request body ProductRequest true "Product data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/products [post]
func (h *AdminProductsHandler) Create(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	product, err := h.productService.Create(c.Request().Context(), service.ProductInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Active:      req.Active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"product": product})
}

// Get godoc
// @Summary Get a catalog entry
// @Tags admin-products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/products/{id} [get]
func (h *AdminProductsHandler) Get(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"product": product})
}

// Update godoc
// @Summary Update a catalog entry
// @Tags admin-products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product data"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/products/{id} [put]
func (h *AdminProductsHandler) Update(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	product, err := h.productService.Update(c.Request().Context(), id, service.ProductInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Active:      req.Active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"product": product})
}

// Delete godoc
// @Summary Delete a catalog entry
// @Tags admin-products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/products/{id} [delete]
func (h *AdminProductsHandler) Delete(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
