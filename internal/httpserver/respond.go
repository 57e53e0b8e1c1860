package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/masalakitchen/storefront/internal/apperr"
	"github.com/masalakitchen/storefront/internal/transport"
	"github.com/masalakitchen/storefront/pkg/logging"
)

// respondError maps a service error onto the sanitized client response.
// The full error is logged server-side only.
func respondError(c echo.Context, handler string, err error) error {
	ctx := c.Request().Context()
	status, code, msg := apperr.Status(err)

	l := logging.FromContext(ctx).With("handler", handler)
	if status >= 500 {
		l.Error("request_failed", "status", status, "error", err)
	} else {
		l.Warn("request_rejected", "status", status, "code", code, "error", err)
	}

	return c.JSON(status, transport.ErrorResponse{Error: msg, Code: code})
}
