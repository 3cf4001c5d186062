package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/niharika-studio/portfolio-api/internal/api/middleware"
)

// ctxAdminID extracts the admin id injected by the session middleware. Its
// presence proves the gate ran; a missing value on a protected route means
// the route was wired without the middleware and must fail closed.
func ctxAdminID(c echo.Context) (string, error) {
	adminID, _ := c.Get(middleware.ContextAdminID).(string)
	if adminID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return adminID, nil
}
