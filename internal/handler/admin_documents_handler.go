package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/service"
)

// AdminDocumentsHandler handles document metadata records. Document IDs are
// UUIDs, not sequential ints.
type AdminDocumentsHandler struct {
	authService     service.AuthService
	documentService service.DocumentService
}

// NewAdminDocumentsHandler creates a new admin documents handler.
func NewAdminDocumentsHandler(authService service.AuthService, documentService service.DocumentService) *AdminDocumentsHandler {
	return &AdminDocumentsHandler{authService: authService, documentService: documentService}
}

// CreateDocumentRequest represents a document metadata record.
type CreateDocumentRequest struct {
	Name        string `json:"name" validate:"required"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StorageURL  string `json:"storage_url" validate:"required,url"`
	OrderID     *uint  `json:"order_id"`
	CustomerID  *uint  `json:"customer_id"`
}

// List godoc
// @Summary List documents, optionally filtered by order
// @Tags admin-documents
// @Produce json
// @Param order_id query int false "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/documents [get]
func (h *AdminDocumentsHandler) List(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	if c.QueryParam("order_id") != "" {
		orderID, err := parseQueryID(c, "order_id")
		if err != nil {
			return respondError(c, err)
		}
		documents, err := h.documentService.ListByOrder(c.Request().Context(), orderID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"documents": documents})
	}

	documents, err := h.documentService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"documents": documents})
}

// Create godoc
// @Summary Record an uploaded document
// @Tags admin-documents
// @Accept json
// @Produce json
// @Param request body CreateDocumentRequest true "Document metadata"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/documents [post]
func (h *AdminDocumentsHandler) Create(c echo.Context) error {
	session, err := h.authService.RequireAdmin(c.Request())
	if err != nil {
		return respondError(c, err)
	}

	var req CreateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	}

	doc, err := h.documentService.Create(c.Request().Context(), service.DocumentInput{
		Name:        req.Name,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageURL:  req.StorageURL,
		OrderID:     req.OrderID,
		CustomerID:  req.CustomerID,
	}, session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"document": doc})
}

// Get godoc
// @Summary Get a document record
// @Tags admin-documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/documents/{id} [get]
func (h *AdminDocumentsHandler) Get(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.ErrValidation)
	}

	doc, err := h.documentService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"document": doc})
}

// Delete godoc
// @Summary Delete a document record
// @Tags admin-documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/documents/{id} [delete]
func (h *AdminDocumentsHandler) Delete(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.ErrValidation)
	}

	if err := h.documentService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
