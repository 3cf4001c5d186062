package ports

import (
	"context"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
)

// SessionStore holds server-side sessions keyed by an opaque id. Entries
// expire after the configured idle TTL unless touched.
type SessionStore interface {
	// Create stores a new authenticated session for adminID and returns its id.
	Create(ctx context.Context, adminID string) (string, error)
	// Get returns the session or domain.ErrSessionNotFound when absent/expired.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Touch resets the idle TTL of an existing session.
	Touch(ctx context.Context, id string) error
	// Delete removes the session. Deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error
}
