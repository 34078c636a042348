package ports

import (
	"context"

	"github.com/vidtube/platform/internal/core/domain"
)

// TweetService defines tweet use-cases. Mutations are owner-checked.
type TweetService interface {
	Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Tweet, error)
	Update(ctx context.Context, requesterID, id, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, requesterID, id string) error
}

// CommentService defines comment use-cases. Mutations are owner-checked.
type CommentService interface {
	Add(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID string, page, limit int) ([]*domain.Comment, int64, error)
	Update(ctx context.Context, requesterID, id, content string) (*domain.Comment, error)
	Delete(ctx context.Context, requesterID, id string) error
}

// LikeService toggles likes on videos, comments, and tweets.
type LikeService interface {
	Toggle(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (liked bool, err error)
}
