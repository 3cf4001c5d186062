package ports

import (
	"context"
	"io"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
)

// FileUpload is one inbound file as received at the HTTP boundary.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ImageMetadata carries the caller-supplied fields attached to an upload.
type ImageMetadata struct {
	Title       string
	Description string
	Category    string
	Orientation string
}

// BatchFailure identifies one failed item of a batch upload by its position
// in the input slice.
type BatchFailure struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
	// Err is the underlying failure, kept so callers can classify the
	// outcome (validation vs remote) without parsing Reason.
	Err error `json:"-"`
}

// BatchResult reports the outcome of a batch upload. Images holds the
// successfully persisted records in input order; Failures attributes every
// failed item. Partial failure is therefore distinguishable from total
// failure by inspecting both lists.
type BatchResult struct {
	Images   []*domain.Image
	Failures []BatchFailure
}

// ImageService is the media upload pipeline plus the public gallery queries.
type ImageService interface {
	UploadFile(ctx context.Context, file FileUpload, meta ImageMetadata) (*domain.Image, error)
	UploadMany(ctx context.Context, files []FileUpload, meta ImageMetadata) (*BatchResult, error)
	UploadFromURL(ctx context.Context, remoteURL string, meta ImageMetadata) (*domain.Image, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ImageFilter) ([]*domain.Image, error)
	Categories(ctx context.Context) ([]string, error)
}
