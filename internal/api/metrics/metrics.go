// Package metrics defines all custom Prometheus metrics for the portfolio
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// ── Upload pipeline ───────────────────────────────────────────────────────────

// UploadsTotal counts upload attempts that passed validation.
// Labels:
//   - method: "file", "batch" or "url"
//   - result: "ok" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of image uploads, by method and result.",
	},
	[]string{"method", "result"},
)

// UploadDuration measures one upload request end-to-end, including the
// remote transfer and the record write.
var UploadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_duration_seconds",
		Help:      "Duration of upload requests from validation to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ImagesDeletedTotal counts deletion attempts.
// Label:
//   - result: "ok", "not_found" or "error"
var ImagesDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_deleted_total",
		Help:      "Total number of image deletions, by result.",
	},
	[]string{"result"},
)

// OrphanCleanupTotal counts background cleanup outcomes for remote objects
// that lost their record.
// Label:
//   - result: "deleted", "failed" or "dropped"
var OrphanCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orphan_cleanup_total",
		Help:      "Total number of orphaned remote objects handled by the cleanup worker.",
	},
	[]string{"result"},
)

// ── Authentication ────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// BlockedRequestsTotal counts requests rejected by the access-control filter.
// Label:
//   - rule: which guard rule fired (e.g. "admin_page", "login_page", "html_probe")
var BlockedRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blocked_requests_total",
		Help:      "Total number of requests blocked by the access-control filter, by rule.",
	},
	[]string{"rule"},
)
