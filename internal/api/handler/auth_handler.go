package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/niharika-studio/portfolio-api/internal/api/metrics"
	"github.com/niharika-studio/portfolio-api/internal/api/middleware"
	"github.com/niharika-studio/portfolio-api/internal/core/domain"
	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

// AuthHandler exposes the session gate over HTTP. The session token travels
// in an HTTP-only, same-site-strict cookie, never in the response body.
type AuthHandler struct {
	auth          ports.AuthService
	sessionTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(auth ports.AuthService, sessionTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, sessionTTL: sessionTTL, secureCookies: secureCookies}
}

// Login authenticates the admin and opens a session.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload", Code: "VALIDATION_ERROR"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "VALIDATION_ERROR"})
	}

	token, _, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			// One uniform message, whether the username exists or not.
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid username or password", Code: "AUTH_FAILED"})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	c.SetCookie(middleware.NewSessionCookie(token, h.sessionTTL, h.secureCookies))

	return c.JSON(http.StatusOK, loginResponse{
		Success:     true,
		Message:     "Login successful",
		RedirectURL: "/admin",
	})
}

// Logout closes the session. Calling it without a session is fine.
//
// @Summary      Admin logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  basicResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		h.auth.Logout(c.Request().Context(), cookie.Value)
	}
	c.SetCookie(middleware.ExpiredSessionCookie(h.secureCookies))

	return c.JSON(http.StatusOK, basicResponse{Success: true, Message: "Logout successful"})
}

// Check reports whether the caller holds a valid session. It never errors;
// every invalid state reads as "not authenticated".
//
// @Summary      Session status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authStatusResponse
// @Router       /api/auth/check [get]
func (h *AuthHandler) Check(c echo.Context) error {
	authenticated := false
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if _, err := h.auth.Check(c.Request().Context(), cookie.Value); err == nil {
			authenticated = true
		}
	}
	return c.JSON(http.StatusOK, authStatusResponse{IsAuthenticated: authenticated})
}
