package ports

import (
	"context"

	"github.com/vidtube/platform/internal/core/domain"
)

// ListVideosFilter carries the (deliberately simple) query parameters for
// listing videos.
type ListVideosFilter struct {
	OwnerID       string // empty = all owners
	TitleContains string // optional case-insensitive substring match
	PublishedOnly bool
	Page          int // 1-based
	Limit         int // capped by the service
}

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	Create(ctx context.Context, v *domain.Video) (*domain.Video, error)
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	List(ctx context.Context, filter ListVideosFilter) ([]*domain.Video, int64, error)
	Update(ctx context.Context, id string, title, description string) (*domain.Video, error)
	SetPublished(ctx context.Context, id string, published bool) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// OwnerStats aggregates totals for the channel dashboard.
	OwnerStats(ctx context.Context, ownerID string) (videos int64, views int64, err error)
	IDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}

type TweetRepository interface {
	Create(ctx context.Context, t *domain.Tweet) (*domain.Tweet, error)
	FindByID(ctx context.Context, id string) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Tweet, error)
	Update(ctx context.Context, id, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, id string) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID string, page, limit int) ([]*domain.Comment, int64, error)
	Update(ctx context.Context, id, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

type LikeRepository interface {
	// Toggle creates the like when absent and removes it when present,
	// reporting whether the target is liked afterwards.
	Toggle(ctx context.Context, like *domain.Like) (liked bool, err error)
	CountByTarget(ctx context.Context, target domain.LikeTarget, targetID string) (int64, error)
	CountByTargetIDs(ctx context.Context, target domain.LikeTarget, targetIDs []string) (int64, error)
}
