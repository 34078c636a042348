package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/api/metrics"
	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes view events to a fixed set of workers using consistent
// hashing on the video id, guaranteeing per-video ordering of view-count
// increments.
type Dispatcher struct {
	workers []chan domain.ViewEvent
	videos  ports.VideoService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, videos ports.VideoService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ViewEvent, numWorkers),
		videos:  videos,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ViewEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a view event to the worker responsible for its video. The
// call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event domain.ViewEvent) {
	idx := d.shardIndex(event.VideoID)
	d.workers[idx] <- event
	metrics.ViewQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a video id deterministically to a worker index.
func (d *Dispatcher) shardIndex(videoID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(videoID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ViewEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.ViewQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.videos.RegisterView(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("video_id", event.VideoID).
					Int("worker_id", id).
					Msg("view event processing failed")
			}
		}
	}
}
