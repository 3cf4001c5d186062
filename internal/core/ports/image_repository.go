package ports

import (
	"context"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
)

// ImageFilter carries the gallery query constraints. An empty field means
// no constraint on that axis; values are validated before reaching the
// repository.
type ImageFilter struct {
	Category    string
	Orientation string
}

// ImageRepository defines persistence operations for image records.
type ImageRepository interface {
	Create(ctx context.Context, img *domain.Image) (*domain.Image, error)
	FindByID(ctx context.Context, id string) (*domain.Image, error)
	Delete(ctx context.Context, id string) error
	// List returns records matching filter, newest-first by upload time.
	List(ctx context.Context, filter ImageFilter) ([]*domain.Image, error)
	// Categories returns the distinct category values currently present.
	Categories(ctx context.Context) ([]string, error)
}
