package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

const (
	// MaxFileSize is the upload ceiling; a file of exactly this size is accepted.
	MaxFileSize = 10 << 20 // 10 MiB
	// MaxBatchSize caps one multi-file upload request.
	MaxBatchSize = 10
)

var allowedExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

var allowedMIMETypes = map[string]struct{}{
	"image/jpeg": {}, "image/jpg": {}, "image/png": {}, "image/gif": {}, "image/webp": {},
}

// ImageService implements the upload pipeline and the gallery queries.
// Consistency with the media host is kept by ordering alone: a record is
// written only after the remote upload succeeded, and removed only after the
// remote object is gone.
type ImageService struct {
	repo    ports.ImageRepository
	media   ports.MediaStore
	orphans ports.OrphanQueue
	log     zerolog.Logger
}

func NewImageService(repo ports.ImageRepository, media ports.MediaStore, orphans ports.OrphanQueue, log zerolog.Logger) *ImageService {
	return &ImageService{repo: repo, media: media, orphans: orphans, log: log}
}

func (s *ImageService) UploadFile(ctx context.Context, file ports.FileUpload, meta ports.ImageMetadata) (*domain.Image, error) {
	category, orientation, err := parseMetadata(meta, true)
	if err != nil {
		return nil, err
	}
	if err := validateFile(file); err != nil {
		return nil, err
	}

	return s.transferAndRecord(ctx, file, meta.Title, meta.Description, category, orientation)
}

func (s *ImageService) UploadMany(ctx context.Context, files []ports.FileUpload, meta ports.ImageMetadata) (*ports.BatchResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", domain.ErrValidation)
	}
	if len(files) > MaxBatchSize {
		return nil, fmt.Errorf("%w: at most %d files per batch", domain.ErrValidation, MaxBatchSize)
	}

	category, orientation, err := parseMetadata(meta, false)
	if err != nil {
		return nil, err
	}

	type outcome struct {
		image *domain.Image
		err   error
	}

	// Fan out one upload per file and join; the indexed slice keeps a
	// stable association between input position and outcome.
	outcomes := make([]outcome, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file ports.FileUpload) {
			defer wg.Done()
			if err := validateFile(file); err != nil {
				outcomes[i] = outcome{err: err}
				return
			}
			title := fmt.Sprintf("Image %d", i+1)
			img, err := s.transferAndRecord(ctx, file, title, "", category, orientation)
			outcomes[i] = outcome{image: img, err: err}
		}(i, file)
	}
	wg.Wait()

	result := &ports.BatchResult{}
	for i, out := range outcomes {
		if out.err != nil {
			s.log.Error().Err(out.err).
				Int("index", i).
				Str("filename", files[i].Filename).
				Msg("batch upload item failed")
			result.Failures = append(result.Failures, ports.BatchFailure{
				Index:    i,
				Filename: files[i].Filename,
				Reason:   out.err.Error(),
				Err:      out.err,
			})
			continue
		}
		result.Images = append(result.Images, out.image)
	}
	return result, nil
}

func (s *ImageService) UploadFromURL(ctx context.Context, remoteURL string, meta ports.ImageMetadata) (*domain.Image, error) {
	if strings.TrimSpace(remoteURL) == "" {
		return nil, fmt.Errorf("%w: image URL is required", domain.ErrValidation)
	}
	category, orientation, err := parseMetadata(meta, true)
	if err != nil {
		return nil, err
	}

	upload, err := s.media.UploadFromURL(ctx, remoteURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMediaUpload, err)
	}

	return s.record(ctx, upload, meta.Title, meta.Description, category, orientation, domain.UploadMethodURL)
}

func (s *ImageService) Delete(ctx context.Context, id string) error {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Remote object goes first. On failure the record stays intact so the
	// operation can be retried without leaving a dangling reference.
	if err := s.media.Delete(ctx, img.MediaID); err != nil {
		s.log.Error().Err(err).
			Str("image_id", img.ID).
			Str("media_id", img.MediaID).
			Msg("media host deletion failed")
		return fmt.Errorf("%w: %v", domain.ErrMediaDelete, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		// Remote object is gone but the record survived: a reconciliation
		// anomaly, surfaced instead of swallowed.
		s.log.Error().Err(err).
			Str("image_id", img.ID).
			Str("media_id", img.MediaID).
			Msg("record deletion failed after remote object was destroyed")
		return fmt.Errorf("%w: record %s outlived its remote object", domain.ErrPersistence, id)
	}
	return nil
}

func (s *ImageService) List(ctx context.Context, filter ports.ImageFilter) ([]*domain.Image, error) {
	normalized, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, normalized)
}

func (s *ImageService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// transferAndRecord runs the validated file through the remote transfer and
// persistence stages.
func (s *ImageService) transferAndRecord(ctx context.Context, file ports.FileUpload, title, description string, category domain.Category, orientation domain.Orientation) (*domain.Image, error) {
	upload, err := s.media.Upload(ctx, file.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMediaUpload, err)
	}
	return s.record(ctx, upload, title, description, category, orientation, domain.UploadMethodFile)
}

func (s *ImageService) record(ctx context.Context, upload *ports.MediaUpload, title, description string, category domain.Category, orientation domain.Orientation, method domain.UploadMethod) (*domain.Image, error) {
	now := time.Now().UTC()
	img := &domain.Image{
		Title:        title,
		Description:  description,
		ImageURL:     upload.URL,
		MediaID:      upload.MediaID,
		Category:     category,
		Orientation:  orientation,
		UploadMethod: method,
		UploadedAt:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, img)
	if err != nil {
		// The remote object exists but its record does not: hand the orphan
		// to the cleanup queue and surface the divergence.
		s.log.Error().Err(err).
			Str("media_id", upload.MediaID).
			Msg("record write failed after successful remote upload")
		if s.orphans != nil {
			s.orphans.Enqueue(upload.MediaID)
		}
		return nil, fmt.Errorf("%w: remote object %s has no record", domain.ErrPersistence, upload.MediaID)
	}
	return created, nil
}

func validateFile(file ports.FileUpload) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: only image files are allowed (jpeg, jpg, png, gif, webp)", domain.ErrValidation)
	}
	mime := strings.ToLower(file.ContentType)
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if _, ok := allowedMIMETypes[mime]; !ok {
		return fmt.Errorf("%w: unsupported content type %q", domain.ErrValidation, file.ContentType)
	}
	if file.Size > MaxFileSize {
		return fmt.Errorf("%w: file exceeds the %d byte limit", domain.ErrValidation, MaxFileSize)
	}
	return nil
}

func parseMetadata(meta ports.ImageMetadata, requireTitle bool) (domain.Category, domain.Orientation, error) {
	if requireTitle && strings.TrimSpace(meta.Title) == "" {
		return "", "", fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	category, err := domain.ParseCategory(meta.Category)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q is not a valid category", domain.ErrValidation, meta.Category)
	}
	orientation, err := domain.ParseOrientation(meta.Orientation)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q is not a valid orientation", domain.ErrValidation, meta.Orientation)
	}
	return category, orientation, nil
}

// normalizeFilter maps the wildcard value to "no constraint" and validates
// everything else against the closed enums.
func normalizeFilter(filter ports.ImageFilter) (ports.ImageFilter, error) {
	out := ports.ImageFilter{}

	if filter.Category != "" && filter.Category != "all" {
		category, err := domain.ParseCategory(filter.Category)
		if err != nil {
			return out, fmt.Errorf("%w: %q is not a valid category", domain.ErrValidation, filter.Category)
		}
		out.Category = string(category)
	}
	if filter.Orientation != "" && filter.Orientation != "all" {
		orientation, err := domain.ParseOrientation(filter.Orientation)
		if err != nil {
			return out, fmt.Errorf("%w: %q is not a valid orientation", domain.ErrValidation, filter.Orientation)
		}
		out.Orientation = string(orientation)
	}
	return out, nil
}
