package ports

import (
	"context"

	"github.com/vidtube/platform/internal/core/domain"
)

// PublishVideoInput carries the data for publishing a new video. Both asset
// paths are required and point at locally staged files.
type PublishVideoInput struct {
	OwnerID       string
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// ListVideosResult is one page of videos plus the total match count.
type ListVideosResult struct {
	Items []*domain.Video
	Total int64
	Page  int
	Limit int
}

// ChannelStats aggregates a channel's dashboard numbers.
type ChannelStats struct {
	TotalVideos int64 `json:"total_videos"`
	TotalViews  int64 `json:"total_views"`
	TotalLikes  int64 `json:"total_likes"`
}

// VideoService defines video use-cases.
type VideoService interface {
	Publish(ctx context.Context, input PublishVideoInput) (*domain.Video, error)
	Get(ctx context.Context, id string) (*domain.Video, error)
	List(ctx context.Context, filter ListVideosFilter) (*ListVideosResult, error)
	Update(ctx context.Context, requesterID, id, title, description string) (*domain.Video, error)
	TogglePublish(ctx context.Context, requesterID, id string) (*domain.Video, error)
	Delete(ctx context.Context, requesterID, id string) error
	// RegisterView counts one playback view, deduplicated per viewer within
	// a window. Called from the async view dispatcher, not request handlers.
	RegisterView(ctx context.Context, event domain.ViewEvent) error
	ChannelStats(ctx context.Context, ownerID string) (*ChannelStats, error)
}

// ViewDeduper decides whether a view was already counted within the dedup
// window.
type ViewDeduper interface {
	Seen(ctx context.Context, videoID, viewerID string) (bool, error)
	Mark(ctx context.Context, videoID, viewerID string) error
}
