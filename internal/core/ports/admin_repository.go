package ports

import (
	"context"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
)

// AdminRepository defines the interface for admin credential persistence.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}
