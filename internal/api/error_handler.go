package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
)

// errorEnvelope is the canonical shape of every API error response.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "error", "code"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg, code := resolveError(err, log, c)
		_ = c.JSON(status, errorEnvelope{Error: msg, Code: code})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), ""
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidOrientation):
		return http.StatusBadRequest, err.Error(), "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password", "AUTH_FAILED"
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "Invalid or expired session. Please login again.", "UNAUTHENTICATED"
	case errors.Is(err, domain.ErrAdminExists):
		return http.StatusConflict, "admin already exists", "CONFLICT"
	case errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound, "image not found", "NOT_FOUND"
	case errors.Is(err, domain.ErrAdminNotFound):
		return http.StatusNotFound, "admin not found", "NOT_FOUND"
	case errors.Is(err, domain.ErrMediaUpload):
		return http.StatusBadGateway, "failed to upload image to media host", "UPLOAD_ERROR"
	case errors.Is(err, domain.ErrMediaDelete):
		return http.StatusBadGateway, "failed to delete image from media host", "DELETION_ERROR"
	case errors.Is(err, domain.ErrPersistence):
		// The remote side effect already happened; the cleanup worker will
		// reconcile. The caller only learns that the save failed.
		return http.StatusInternalServerError, "failed to save image record", "PERSISTENCE_ERROR"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR"
}
