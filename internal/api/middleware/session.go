package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "portfolio_session"

// ContextAdminID is the echo context key holding the authenticated admin id.
const ContextAdminID = "admin_id"

// NewSessionCookie builds the HTTP-only, same-site-strict session cookie.
func NewSessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredSessionCookie clears the session cookie on the client.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// resolveSession runs the shared validity check behind both gates: extract
// the cookie, validate it against the session gate, and expose the admin id
// to downstream handlers. Touching the idle timeout is a side effect of Check.
func resolveSession(c echo.Context, auth ports.AuthService) error {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return echo.ErrUnauthorized
	}

	adminID, err := auth.Check(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}

	c.Set(ContextAdminID, adminID)
	return nil
}

// RequireSessionPage gates page routes: unauthenticated callers are sent to
// the login entry point instead of receiving an API error.
func RequireSessionPage(auth ports.AuthService, loginPath string, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := resolveSession(c, auth); err != nil {
				c.SetCookie(ExpiredSessionCookie(secure))
				return c.Redirect(http.StatusFound, loginPath)
			}
			return next(c)
		}
	}
}

// RequireSessionAPI gates API routes with a structured 401.
func RequireSessionAPI(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := resolveSession(c, auth); err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "Invalid or expired session. Please login again.",
					"code":    "UNAUTHENTICATED",
				})
			}
			return next(c)
		}
	}
}
