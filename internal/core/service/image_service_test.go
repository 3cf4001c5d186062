package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

type stubImageRepo struct {
	mu         sync.Mutex
	images     map[string]*domain.Image
	nextID     int
	failCreate bool
	failDelete bool
}

func newStubImageRepo() *stubImageRepo {
	return &stubImageRepo{images: make(map[string]*domain.Image)}
}

func (r *stubImageRepo) Create(_ context.Context, img *domain.Image) (*domain.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return nil, errors.New("write concern error")
	}
	r.nextID++
	clone := *img
	clone.ID = fmt.Sprintf("img-%d", r.nextID)
	r.images[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubImageRepo) FindByID(_ context.Context, id string) (*domain.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	clone := *img
	return &clone, nil
}

func (r *stubImageRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete {
		return errors.New("write concern error")
	}
	if _, ok := r.images[id]; !ok {
		return domain.ErrImageNotFound
	}
	delete(r.images, id)
	return nil
}

func (r *stubImageRepo) List(_ context.Context, filter ports.ImageFilter) ([]*domain.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Image
	for _, img := range r.images {
		if filter.Category != "" && string(img.Category) != filter.Category {
			continue
		}
		if filter.Orientation != "" && string(img.Orientation) != filter.Orientation {
			continue
		}
		clone := *img
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *stubImageRepo) Categories(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, img := range r.images {
		if _, ok := seen[string(img.Category)]; !ok {
			seen[string(img.Category)] = struct{}{}
			out = append(out, string(img.Category))
		}
	}
	sort.Strings(out)
	return out, nil
}

type stubMediaStore struct {
	mu          sync.Mutex
	uploads     int
	urlUploads  int
	deletes     []string
	seq         int
	failContent map[string]bool
	failUploads bool
	failDelete  bool
}

func newStubMediaStore() *stubMediaStore {
	return &stubMediaStore{failContent: make(map[string]bool)}
}

func (m *stubMediaStore) Upload(_ context.Context, content io.Reader) (*ports.MediaUpload, error) {
	body, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads++
	if m.failUploads || m.failContent[string(body)] {
		return nil, errors.New("media host unavailable")
	}
	m.seq++
	return &ports.MediaUpload{
		URL:     fmt.Sprintf("https://media.example/v1/%d.jpg", m.seq),
		MediaID: fmt.Sprintf("portfolio/img-%d", m.seq),
	}, nil
}

func (m *stubMediaStore) UploadFromURL(_ context.Context, _ string) (*ports.MediaUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urlUploads++
	if m.failUploads {
		return nil, errors.New("media host unavailable")
	}
	m.seq++
	return &ports.MediaUpload{
		URL:     fmt.Sprintf("https://media.example/v1/%d.jpg", m.seq),
		MediaID: fmt.Sprintf("portfolio/img-%d", m.seq),
	}, nil
}

func (m *stubMediaStore) Delete(_ context.Context, mediaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete {
		return errors.New("media host unavailable")
	}
	m.deletes = append(m.deletes, mediaID)
	return nil
}

func (m *stubMediaStore) uploadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploads
}

type stubOrphanQueue struct {
	mu       sync.Mutex
	enqueued []string
}

func (q *stubOrphanQueue) Enqueue(mediaID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueued = append(q.enqueued, mediaID)
}

func newTestImageService() (*ImageService, *stubImageRepo, *stubMediaStore, *stubOrphanQueue) {
	repo := newStubImageRepo()
	media := newStubMediaStore()
	orphans := &stubOrphanQueue{}
	svc := NewImageService(repo, media, orphans, zerolog.Nop())
	return svc, repo, media, orphans
}

func fileUpload(name, contentType, payload string) ports.FileUpload {
	return ports.FileUpload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(payload)),
		Content:     strings.NewReader(payload),
	}
}

func weddingMeta() ports.ImageMetadata {
	return ports.ImageMetadata{Title: "Ceremony", Category: "WEDDING", Orientation: "portrait"}
}

func TestImageService_UploadFile_Success(t *testing.T) {
	svc, _, _, _ := newTestImageService()

	img, err := svc.UploadFile(context.Background(), fileUpload("a.jpg", "image/jpeg", "bytes"), weddingMeta())
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if img.ID == "" || img.ImageURL == "" || img.MediaID == "" {
		t.Fatalf("record missing identifiers: %+v", img)
	}
	if img.Category != domain.CategoryWedding || img.Orientation != domain.OrientationPortrait {
		t.Fatalf("metadata not applied: %+v", img)
	}
	if img.UploadMethod != domain.UploadMethodFile {
		t.Fatalf("expected upload method file, got %q", img.UploadMethod)
	}

	// Exact filter isolation on both axes.
	byCategory, err := svc.List(context.Background(), ports.ImageFilter{Category: "WEDDING"})
	if err != nil || len(byCategory) != 1 {
		t.Fatalf("expected 1 image for WEDDING, got %d (err=%v)", len(byCategory), err)
	}
	otherCategory, err := svc.List(context.Background(), ports.ImageFilter{Category: "PORTRAIT"})
	if err != nil || len(otherCategory) != 0 {
		t.Fatalf("expected no images for PORTRAIT, got %d (err=%v)", len(otherCategory), err)
	}
	byOrientation, err := svc.List(context.Background(), ports.ImageFilter{Orientation: "landscape"})
	if err != nil || len(byOrientation) != 0 {
		t.Fatalf("expected no landscape images, got %d (err=%v)", len(byOrientation), err)
	}
}

func TestImageService_UploadFile_SizeBoundary(t *testing.T) {
	svc, repo, media, _ := newTestImageService()

	atLimit := ports.FileUpload{
		Filename:    "big.jpg",
		ContentType: "image/jpeg",
		Size:        MaxFileSize,
		Content:     bytes.NewReader([]byte("pretend this is 10 MiB")),
	}
	if _, err := svc.UploadFile(context.Background(), atLimit, weddingMeta()); err != nil {
		t.Fatalf("file of exactly %d bytes must be accepted: %v", MaxFileSize, err)
	}

	overLimit := atLimit
	overLimit.Size = MaxFileSize + 1
	_, err := svc.UploadFile(context.Background(), overLimit, weddingMeta())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if media.uploadCalls() != 1 {
		t.Fatalf("rejected file must never reach the media host (calls=%d)", media.uploadCalls())
	}
	if len(repo.images) != 1 {
		t.Fatalf("rejected file must not be recorded")
	}
}

func TestImageService_UploadFile_RejectsBadFiles(t *testing.T) {
	svc, _, media, _ := newTestImageService()

	cases := []ports.FileUpload{
		fileUpload("notes.pdf", "application/pdf", "x"), // wrong extension and type
		fileUpload("a.jpg", "application/octet-stream", "x"), // extension ok, type not
		fileUpload("a.svg", "image/jpeg", "x"),               // type ok, extension not
	}
	for _, file := range cases {
		if _, err := svc.UploadFile(context.Background(), file, weddingMeta()); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("file %q: expected ErrValidation, got %v", file.Filename, err)
		}
	}
	if media.uploadCalls() != 0 {
		t.Fatalf("no rejected file may reach the media host (calls=%d)", media.uploadCalls())
	}
}

func TestImageService_UploadFile_InvalidMetadata(t *testing.T) {
	svc, _, media, _ := newTestImageService()

	cases := []ports.ImageMetadata{
		{Title: "t", Category: "BIRTHDAY", Orientation: "portrait"},
		{Title: "t", Category: "WEDDING", Orientation: "diagonal"},
		{Title: "", Category: "WEDDING", Orientation: "portrait"},
	}
	for _, meta := range cases {
		if _, err := svc.UploadFile(context.Background(), fileUpload("a.jpg", "image/jpeg", "x"), meta); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("meta %+v: expected ErrValidation, got %v", meta, err)
		}
	}
	if media.uploadCalls() != 0 {
		t.Fatalf("invalid metadata must be rejected before transfer")
	}
}

func TestImageService_UploadFile_MediaFailure(t *testing.T) {
	svc, repo, media, _ := newTestImageService()
	media.failUploads = true

	_, err := svc.UploadFile(context.Background(), fileUpload("a.jpg", "image/jpeg", "x"), weddingMeta())
	if !errors.Is(err, domain.ErrMediaUpload) {
		t.Fatalf("expected ErrMediaUpload, got %v", err)
	}
	if len(repo.images) != 0 {
		t.Fatalf("no record may exist after a failed remote upload")
	}
}

func TestImageService_UploadFile_PersistenceFailure(t *testing.T) {
	svc, repo, _, orphans := newTestImageService()
	repo.failCreate = true

	_, err := svc.UploadFile(context.Background(), fileUpload("a.jpg", "image/jpeg", "x"), weddingMeta())
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if len(orphans.enqueued) != 1 {
		t.Fatalf("expected the orphaned media id to be queued for cleanup, got %v", orphans.enqueued)
	}
}

func TestImageService_UploadMany_PartialFailure(t *testing.T) {
	svc, repo, media, _ := newTestImageService()
	media.failContent["payload-3"] = true

	files := make([]ports.FileUpload, 5)
	for i := range files {
		files[i] = fileUpload(fmt.Sprintf("file-%d.jpg", i), "image/jpeg", fmt.Sprintf("payload-%d", i))
	}

	result, err := svc.UploadMany(context.Background(), files, ports.ImageMetadata{Category: "WEDDING", Orientation: "portrait"})
	if err != nil {
		t.Fatalf("batch upload failed: %v", err)
	}
	if len(result.Images) != 4 {
		t.Fatalf("expected 4 successes, got %d", len(result.Images))
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}
	if result.Failures[0].Index != 3 || result.Failures[0].Filename != "file-3.jpg" {
		t.Fatalf("failure not attributed to index 3: %+v", result.Failures[0])
	}

	// The 4 successful records must be persisted and queryable.
	listed, err := svc.List(context.Background(), ports.ImageFilter{Category: "WEDDING"})
	if err != nil || len(listed) != 4 {
		t.Fatalf("expected 4 persisted records, got %d (err=%v)", len(listed), err)
	}
	if len(repo.images) != 4 {
		t.Fatalf("expected 4 records in store, got %d", len(repo.images))
	}
}

func TestImageService_UploadMany_AllInvalid(t *testing.T) {
	svc, repo, media, _ := newTestImageService()

	files := []ports.FileUpload{
		fileUpload("report.pdf", "application/pdf", "x"),
		fileUpload("notes.pdf", "application/pdf", "y"),
	}
	result, err := svc.UploadMany(context.Background(), files, ports.ImageMetadata{Category: "WEDDING", Orientation: "portrait"})
	if err != nil {
		t.Fatalf("batch upload failed: %v", err)
	}
	if len(result.Images) != 0 || len(result.Failures) != 2 {
		t.Fatalf("expected 2 failures and no successes, got %d/%d", len(result.Images), len(result.Failures))
	}
	for _, f := range result.Failures {
		if !errors.Is(f.Err, domain.ErrValidation) {
			t.Fatalf("failure %d must carry ErrValidation, got %v", f.Index, f.Err)
		}
	}
	if media.uploadCalls() != 0 {
		t.Fatalf("rejected files must never reach the media host (calls=%d)", media.uploadCalls())
	}
	if len(repo.images) != 0 {
		t.Fatalf("rejected files must not be recorded")
	}
}

func TestImageService_UploadMany_Cap(t *testing.T) {
	svc, _, media, _ := newTestImageService()

	files := make([]ports.FileUpload, MaxBatchSize+1)
	for i := range files {
		files[i] = fileUpload(fmt.Sprintf("file-%d.jpg", i), "image/jpeg", "x")
	}
	if _, err := svc.UploadMany(context.Background(), files, ports.ImageMetadata{Category: "WEDDING", Orientation: "portrait"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if media.uploadCalls() != 0 {
		t.Fatalf("oversized batch must not reach the media host")
	}
}

func TestImageService_UploadFromURL_Success(t *testing.T) {
	svc, _, media, _ := newTestImageService()

	img, err := svc.UploadFromURL(context.Background(), "https://example.com/shot.jpg", weddingMeta())
	if err != nil {
		t.Fatalf("url upload failed: %v", err)
	}
	if img.UploadMethod != domain.UploadMethodURL {
		t.Fatalf("expected upload method url, got %q", img.UploadMethod)
	}
	if media.urlUploads != 1 || media.uploads != 0 {
		t.Fatalf("expected a single host-side fetch, got uploads=%d urlUploads=%d", media.uploads, media.urlUploads)
	}
}

func TestImageService_Delete_NotFound(t *testing.T) {
	svc, _, media, _ := newTestImageService()

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
	if len(media.deletes) != 0 {
		t.Fatalf("deleting an unknown id must make no remote call")
	}
}

func TestImageService_Delete_Success(t *testing.T) {
	svc, repo, media, _ := newTestImageService()

	img, err := svc.UploadFile(context.Background(), fileUpload("a.jpg", "image/jpeg", "x"), weddingMeta())
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := svc.Delete(context.Background(), img.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(media.deletes) != 1 || media.deletes[0] != img.MediaID {
		t.Fatalf("expected remote object %q to be destroyed, got %v", img.MediaID, media.deletes)
	}
	if len(repo.images) != 0 {
		t.Fatalf("expected local record to be removed")
	}
	listed, err := svc.List(context.Background(), ports.ImageFilter{})
	if err != nil || len(listed) != 0 {
		t.Fatalf("deleted image still listed: %d (err=%v)", len(listed), err)
	}
}

func TestImageService_Delete_RemoteFailure(t *testing.T) {
	svc, repo, media, _ := newTestImageService()

	img, err := svc.UploadFile(context.Background(), fileUpload("a.jpg", "image/jpeg", "x"), weddingMeta())
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	media.failDelete = true

	if err := svc.Delete(context.Background(), img.ID); !errors.Is(err, domain.ErrMediaDelete) {
		t.Fatalf("expected ErrMediaDelete, got %v", err)
	}
	// Record stays so the deletion can be retried.
	if _, ok := repo.images[img.ID]; !ok {
		t.Fatalf("record must survive a failed remote deletion")
	}
}

func TestImageService_List_WildcardAndInvalid(t *testing.T) {
	svc, _, _, _ := newTestImageService()

	if _, err := svc.List(context.Background(), ports.ImageFilter{Category: "all", Orientation: "all"}); err != nil {
		t.Fatalf("wildcard filter must not error: %v", err)
	}
	if _, err := svc.List(context.Background(), ports.ImageFilter{Category: "nope"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad category, got %v", err)
	}
	if _, err := svc.List(context.Background(), ports.ImageFilter{Orientation: "nope"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad orientation, got %v", err)
	}
}

func TestImageService_Categories(t *testing.T) {
	svc, _, _, _ := newTestImageService()

	metas := []ports.ImageMetadata{
		{Title: "a", Category: "WEDDING", Orientation: "portrait"},
		{Title: "b", Category: "WEDDING", Orientation: "landscape"},
		{Title: "c", Category: "HALDI", Orientation: "square"},
	}
	for i, meta := range metas {
		if _, err := svc.UploadFile(context.Background(), fileUpload(fmt.Sprintf("%d.jpg", i), "image/jpeg", "x"), meta); err != nil {
			t.Fatalf("upload %d failed: %v", i, err)
		}
	}

	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 distinct categories, got %v", categories)
	}
}
