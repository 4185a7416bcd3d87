package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "freightdesk/internal/errors"
)

// respondError maps a domain error onto the HTTP taxonomy and writes the
// standard {error, code} body. Unauthorized and Forbidden always map to 401
// and 403 respectively; unrecognized errors collapse to a generic 500.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", apperrors.ErrValidation, name)
	}
	return uint(id), nil
}

// parseQueryID parses a numeric query parameter.
func parseQueryID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.QueryParam(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", apperrors.ErrValidation, name)
	}
	return uint(id), nil
}
