package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

type LikeService struct {
	repo ports.LikeRepository
	log  zerolog.Logger
}

func NewLikeService(repo ports.LikeRepository, log zerolog.Logger) *LikeService {
	return &LikeService{repo: repo, log: log}
}

// Toggle likes the target when not yet liked, unlikes it otherwise.
func (s *LikeService) Toggle(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (bool, error) {
	switch target {
	case domain.LikeTargetVideo, domain.LikeTargetComment, domain.LikeTargetTweet:
	default:
		return false, fmt.Errorf("%w: unknown like target %q", domain.ErrInvalidInput, target)
	}
	if targetID == "" {
		return false, fmt.Errorf("%w: target id is required", domain.ErrInvalidInput)
	}

	return s.repo.Toggle(ctx, &domain.Like{Target: target, TargetID: targetID, LikedBy: userID})
}
