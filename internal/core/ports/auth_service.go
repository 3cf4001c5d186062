package ports

import (
	"context"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
)

// AuthService is the session gate: it verifies credentials against the
// credential store and issues/validates/destroys session tokens.
type AuthService interface {
	// Login verifies credentials and returns a signed session token.
	// Unknown username and wrong password fail identically with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
	// Check validates a token, refreshes the session idle TTL and returns
	// the admin id. Any malformed, tampered or expired token fails with
	// domain.ErrUnauthenticated and the backing session is destroyed.
	Check(ctx context.Context, token string) (string, error)
	// Logout destroys the session behind token. Idempotent: never errors,
	// even when no session exists.
	Logout(ctx context.Context, token string)
	// Provision creates a new admin with a freshly hashed password.
	Provision(ctx context.Context, username, password string) (*domain.Admin, error)
	// Bootstrap provisions the initial admin unless the username already exists.
	Bootstrap(ctx context.Context, username, password string) error
}
