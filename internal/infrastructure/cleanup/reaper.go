// Package cleanup removes media-host objects that lost their database record
// to a persistence failure. Deleting them keeps the remote store consistent
// with the gallery instead of accumulating unreferenced objects.
package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/niharika-studio/portfolio-api/internal/api/metrics"
	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

const (
	queueBuffer       = 64
	maxAttempts       = 5
	defaultRetryDelay = 30 * time.Second
	attemptTimeout    = 15 * time.Second
)

// Reaper is a single background worker fed through a buffered channel.
// Enqueue never blocks the upload path: when the queue is full the orphan is
// dropped and logged for manual reconciliation.
type Reaper struct {
	jobs       chan string
	media      ports.MediaStore
	log        zerolog.Logger
	retryDelay time.Duration
}

func NewReaper(media ports.MediaStore, log zerolog.Logger) *Reaper {
	return &Reaper{
		jobs:       make(chan string, queueBuffer),
		media:      media,
		log:        log,
		retryDelay: defaultRetryDelay,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (r *Reaper) Start(ctx context.Context) {
	go r.run(ctx)
}

// Enqueue hands an orphaned media id to the worker.
func (r *Reaper) Enqueue(mediaID string) {
	select {
	case r.jobs <- mediaID:
	default:
		metrics.OrphanCleanupTotal.WithLabelValues("dropped").Inc()
		r.log.Error().Str("media_id", mediaID).Msg("cleanup queue full, orphan needs manual reconciliation")
	}
}

func (r *Reaper) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case mediaID := <-r.jobs:
			r.reap(ctx, mediaID)
		}
	}
}

func (r *Reaper) reap(ctx context.Context, mediaID string) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		err := r.media.Delete(attemptCtx, mediaID)
		cancel()

		if err == nil {
			metrics.OrphanCleanupTotal.WithLabelValues("deleted").Inc()
			r.log.Info().Str("media_id", mediaID).Int("attempt", attempt).Msg("orphaned remote object removed")
			return
		}

		r.log.Warn().Err(err).Str("media_id", mediaID).Int("attempt", attempt).Msg("orphan cleanup attempt failed")

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.retryDelay):
		}
	}

	metrics.OrphanCleanupTotal.WithLabelValues("failed").Inc()
	r.log.Error().Str("media_id", mediaID).Msg("orphan cleanup gave up, object needs manual reconciliation")
}
