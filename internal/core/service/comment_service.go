package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

type CommentService struct {
	repo   ports.CommentRepository
	videos ports.VideoRepository
	log    zerolog.Logger
}

func NewCommentService(repo ports.CommentRepository, videos ports.VideoRepository, log zerolog.Logger) *CommentService {
	return &CommentService{repo: repo, videos: videos, log: log}
}

func (s *CommentService) Add(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	// The video must exist; a comment on a deleted video is rejected, not
	// silently stored.
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &domain.Comment{VideoID: videoID, OwnerID: ownerID, Content: content})
}

func (s *CommentService) ListByVideo(ctx context.Context, videoID string, page, limit int) ([]*domain.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.repo.ListByVideo(ctx, videoID, page, limit)
}

func (s *CommentService) Update(ctx context.Context, requesterID, id, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != requesterID {
		return nil, domain.ErrForbidden
	}
	return s.repo.Update(ctx, id, content)
}

func (s *CommentService) Delete(ctx context.Context, requesterID, id string) error {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.OwnerID != requesterID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
