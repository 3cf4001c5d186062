package cleanup

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

type flakyMediaStore struct {
	mu       sync.Mutex
	failures int
	deleted  []string
}

func (m *flakyMediaStore) Upload(context.Context, io.Reader) (*ports.MediaUpload, error) {
	return nil, errors.New("not used")
}

func (m *flakyMediaStore) UploadFromURL(context.Context, string) (*ports.MediaUpload, error) {
	return nil, errors.New("not used")
}

func (m *flakyMediaStore) Delete(_ context.Context, mediaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("media host unavailable")
	}
	m.deleted = append(m.deleted, mediaID)
	return nil
}

func (m *flakyMediaStore) deletedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

func TestReaper_RetriesUntilDeleted(t *testing.T) {
	media := &flakyMediaStore{failures: 2}
	reaper := NewReaper(media, zerolog.Nop())
	reaper.retryDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reaper.Start(ctx)

	reaper.Enqueue("portfolio/orphan-1")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ids := media.deletedIDs(); len(ids) == 1 && ids[0] == "portfolio/orphan-1" {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("orphan was not deleted after retries: %v", media.deletedIDs())
}

func TestReaper_StopsOnCancel(t *testing.T) {
	media := &flakyMediaStore{}
	reaper := NewReaper(media, zerolog.Nop())
	reaper.retryDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	reaper.Start(ctx)
	cancel()

	// Enqueue after cancellation must not panic or block.
	reaper.Enqueue("portfolio/orphan-2")
}
