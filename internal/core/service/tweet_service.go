package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

type TweetService struct {
	repo ports.TweetRepository
	log  zerolog.Logger
}

func NewTweetService(repo ports.TweetRepository, log zerolog.Logger) *TweetService {
	return &TweetService{repo: repo, log: log}
}

func (s *TweetService) Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	return s.repo.Create(ctx, &domain.Tweet{OwnerID: ownerID, Content: content})
}

func (s *TweetService) ListByUser(ctx context.Context, userID string) ([]*domain.Tweet, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *TweetService) Update(ctx context.Context, requesterID, id, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	tweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != requesterID {
		return nil, domain.ErrForbidden
	}
	return s.repo.Update(ctx, id, content)
}

func (s *TweetService) Delete(ctx context.Context, requesterID, id string) error {
	tweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tweet.OwnerID != requesterID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
