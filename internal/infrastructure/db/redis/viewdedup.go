package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewWindow = time.Hour

// ViewDeduper keeps one counted view per viewer per video per window.
// Key format: view:<video_id>:<viewer_id>
type ViewDeduper struct {
	client *redis.Client
}

// NewViewDeduper creates a ViewDeduper wrapping the given Redis client.
func NewViewDeduper(client *redis.Client) *ViewDeduper {
	return &ViewDeduper{client: client}
}

// Seen reports whether this viewer's view of the video was already counted
// within the current window.
func (d *ViewDeduper) Seen(ctx context.Context, videoID, viewerID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(videoID, viewerID)).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the view as counted (expires after viewWindow).
func (d *ViewDeduper) Mark(ctx context.Context, videoID, viewerID string) error {
	return d.client.Set(ctx, d.key(videoID, viewerID), "1", viewWindow).Err()
}

func (d *ViewDeduper) key(videoID, viewerID string) string {
	return fmt.Sprintf("view:%s:%s", videoID, viewerID)
}
