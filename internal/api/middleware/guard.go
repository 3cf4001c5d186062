package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/niharika-studio/portfolio-api/internal/api/metrics"
)

// AccessGuard blocks direct retrieval of the admin and login page resources
// by name. Those views are only reachable through their dedicated routes;
// this filter is defense in depth in front of the session gate, not a
// replacement for it.
func AccessGuard(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := strings.ToLower(c.Request().URL.Path)

			var rule, code, message string
			switch {
			case strings.Contains(path, "admin.html"):
				rule, code = "admin_page", "ADMIN_ACCESS_BLOCKED"
				message = "Direct access to admin panel is not allowed. Please use proper authentication."
			case strings.Contains(path, "login.html"):
				rule, code = "login_page", "LOGIN_ACCESS_BLOCKED"
				message = "Direct access not allowed. Please use /login route."
			case strings.Contains(path, ".html") && (strings.Contains(path, "admin") || strings.Contains(path, "login")):
				rule, code = "html_probe", "FILE_ACCESS_BLOCKED"
				message = "Direct file access not permitted."
			default:
				return next(c)
			}

			metrics.BlockedRequestsTotal.WithLabelValues(rule).Inc()
			log.Warn().
				Str("path", c.Request().URL.Path).
				Str("ip", c.RealIP()).
				Str("rule", rule).
				Msg("blocked direct access attempt")

			return c.JSON(http.StatusForbidden, map[string]string{
				"error":   "Access Denied",
				"message": message,
				"code":    code,
			})
		}
	}
}

// SecurityHeaders sets the baseline response headers and disables caching of
// admin pages.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "1; mode=block")

			if strings.Contains(strings.ToLower(c.Request().URL.Path), "/admin") {
				h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
				h.Set("Pragma", "no-cache")
				h.Set("Expires", "0")
			}

			return next(c)
		}
	}
}
