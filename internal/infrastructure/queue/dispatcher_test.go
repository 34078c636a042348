package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

// recordingVideoService only cares about RegisterView; the remaining methods
// satisfy the interface and are never called by the dispatcher.
type recordingVideoService struct {
	mu     sync.Mutex
	events []domain.ViewEvent
}

func (s *recordingVideoService) RegisterView(_ context.Context, event domain.ViewEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingVideoService) recorded() []domain.ViewEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ViewEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *recordingVideoService) Publish(context.Context, ports.PublishVideoInput) (*domain.Video, error) {
	return nil, domain.ErrVideoNotFound
}

func (s *recordingVideoService) Get(context.Context, string) (*domain.Video, error) {
	return nil, domain.ErrVideoNotFound
}

func (s *recordingVideoService) List(context.Context, ports.ListVideosFilter) (*ports.ListVideosResult, error) {
	return nil, domain.ErrVideoNotFound
}

func (s *recordingVideoService) Update(context.Context, string, string, string, string) (*domain.Video, error) {
	return nil, domain.ErrVideoNotFound
}

func (s *recordingVideoService) TogglePublish(context.Context, string, string) (*domain.Video, error) {
	return nil, domain.ErrVideoNotFound
}

func (s *recordingVideoService) Delete(context.Context, string, string) error {
	return domain.ErrVideoNotFound
}

func (s *recordingVideoService) ChannelStats(context.Context, string) (*ports.ChannelStats, error) {
	return nil, domain.ErrVideoNotFound
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_ProcessesAllEvents(t *testing.T) {
	svc := &recordingVideoService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const total = 50
	for i := 0; i < total; i++ {
		d.Enqueue(domain.ViewEvent{
			VideoID:  fmt.Sprintf("video_%d", i%7),
			ViewerID: fmt.Sprintf("viewer_%d", i),
			At:       time.Now(),
		})
	}

	waitFor(t, func() bool { return len(svc.recorded()) == total })
}

func TestDispatcher_ShardIsStablePerVideo(t *testing.T) {
	d := NewDispatcher(8, &recordingVideoService{}, zerolog.Nop())

	for _, id := range []string{"a", "video_42", "64f1c0ffee"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for %q changed: %d then %d", id, first, got)
			}
		}
	}
}

func TestDispatcher_PerVideoOrdering(t *testing.T) {
	svc := &recordingVideoService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// All events for one video land on one worker, so their relative order
	// is the enqueue order even with other traffic interleaved.
	const total = 20
	for i := 0; i < total; i++ {
		d.Enqueue(domain.ViewEvent{VideoID: "video_hot", ViewerID: fmt.Sprintf("viewer_%02d", i)})
		d.Enqueue(domain.ViewEvent{VideoID: fmt.Sprintf("video_%d", i), ViewerID: "other"})
	}

	waitFor(t, func() bool { return len(svc.recorded()) == 2*total })

	var hot []string
	for _, e := range svc.recorded() {
		if e.VideoID == "video_hot" {
			hot = append(hot, e.ViewerID)
		}
	}
	if len(hot) != total {
		t.Fatalf("expected %d events for video_hot, got %d", total, len(hot))
	}
	for i := 1; i < len(hot); i++ {
		if hot[i] < hot[i-1] {
			t.Fatalf("out-of-order events for video_hot: %v", hot)
		}
	}
}

func TestNewDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingVideoService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
