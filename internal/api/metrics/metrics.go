// Package metrics defines and registers all custom Prometheus metrics for the
// VidTube API. It is the single source of truth for metric names, labels, and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidtube"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// TokenRotationsTotal counts refresh-token rotation attempts.
// Label:
//   - result: "success", "invalid" (malformed/expired token), or
//     "mismatch" (well-formed but superseded token, possible replay)
var TokenRotationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rotations_total",
		Help:      "Total number of refresh-token rotation attempts, by result.",
	},
	[]string{"result"},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadsTotal counts individual asset uploads to the blob store.
// Labels:
//   - asset: logical asset name (e.g. "avatar", "video", "thumbnail")
//   - result: "success" or "failure"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of blob store uploads, by asset and result.",
	},
	[]string{"asset", "result"},
)

// UploadRollbacksTotal counts compensating deletes issued by the upload
// transaction coordinator.
// Label:
//   - asset: logical asset name being rolled back
var UploadRollbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_rollbacks_total",
		Help:      "Total number of compensating blob deletes, by asset.",
	},
	[]string{"asset"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// VideosPublishedTotal counts successfully published videos.
var VideosPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "videos_published_total",
		Help:      "Total number of videos published.",
	},
)

// ViewQueueDepth tracks the current number of view events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var ViewQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_queue_depth",
		Help:      "Current number of view events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
