package handler

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/niharika-studio/portfolio-api/internal/api/middleware"
	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

// PageHandler serves the static site pages. The admin pages never resolve
// through the static file route; they only exist behind these handlers, so
// the path guard can block direct .html probes without breaking the site.
type PageHandler struct {
	auth          ports.AuthService
	webRoot       string
	secureCookies bool
	log           zerolog.Logger
}

func NewPageHandler(auth ports.AuthService, webRoot string, secureCookies bool, log zerolog.Logger) *PageHandler {
	return &PageHandler{auth: auth, webRoot: webRoot, secureCookies: secureCookies, log: log}
}

func (h *PageHandler) page(name string) string {
	return filepath.Join(h.webRoot, name)
}

// Home handles GET / and GET /home.
func (h *PageHandler) Home(c echo.Context) error {
	return c.File(h.page("index.html"))
}

// Gallery handles GET /gallery.
func (h *PageHandler) Gallery(c echo.Context) error {
	return c.File(h.page("gallery.html"))
}

// VideoGallery handles GET /video-gallery.
func (h *PageHandler) VideoGallery(c echo.Context) error {
	return c.File(h.page("video-gallery.html"))
}

// LoginPortal handles GET /admin-login-portal. An admin who already holds a
// valid session skips the form.
func (h *PageHandler) LoginPortal(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if _, err := h.auth.Check(c.Request().Context(), cookie.Value); err == nil {
			return c.Redirect(http.StatusFound, "/admin")
		}
	}
	return c.File(h.page("login.html"))
}

// Admin handles GET /admin. The session middleware has already vetted the
// caller by the time this runs.
func (h *PageHandler) Admin(c echo.Context) error {
	adminID, err := ctxAdminID(c)
	if err != nil {
		return err
	}
	h.log.Info().
		Str("admin_id", adminID).
		Str("ip", c.RealIP()).
		Msg("admin panel accessed")
	return c.File(h.page("admin.html"))
}

// LegacyLogin handles GET /login, kept as a redirect so old bookmarks land
// on the portal.
func (h *PageHandler) LegacyLogin(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/admin-login-portal")
}

// Logout handles GET /logout: destroy the session, drop the cookie, back to
// the home page.
func (h *PageHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		h.auth.Logout(c.Request().Context(), cookie.Value)
	}
	c.SetCookie(middleware.ExpiredSessionCookie(h.secureCookies))
	return c.Redirect(http.StatusFound, "/")
}
