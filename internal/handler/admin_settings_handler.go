package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/service"
)

// AdminSettingsHandler handles the admin key/value settings store.
type AdminSettingsHandler struct {
	authService    service.AuthService
	settingService service.SettingService
}

// NewAdminSettingsHandler creates a new admin settings handler.
func NewAdminSettingsHandler(authService service.AuthService, settingService service.SettingService) *AdminSettingsHandler {
	return &AdminSettingsHandler{authService: authService, settingService: settingService}
}

// PutSettingRequest represents a setting write.
type PutSettingRequest struct {
	Value string `json:"value"`
}

// List godoc
// @Summary List all settings
// @Tags admin-settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/settings [get]
func (h *AdminSettingsHandler) List(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	settings, err := h.settingService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"settings": settings})
}

// Get godoc
// @Summary Get one setting by key
// @Tags admin-settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/settings/{key} [get]
func (h *AdminSettingsHandler) Get(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	setting, err := h.settingService.Get(c.Request().Context(), c.Param("key"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"setting": setting})
}

// Put godoc
// @Summary Create or replace a setting
// @Tags admin-settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param request body PutSettingRequest true "Setting value"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/settings/{key} [put]
func (h *AdminSettingsHandler) Put(c echo.Context) error {
	if _, err := h.authService.RequireAdmin(c.Request()); err != nil {
		return respondError(c, err)
	}

	var req PutSettingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "VALIDATION"})
	}

	setting, err := h.settingService.Put(c.Request().Context(), c.Param("key"), req.Value)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"setting": setting})
}
