package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/api/metrics"
	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// VideoService implements video publishing and management. Publishing is a
// two-asset upload transaction (video file + thumbnail).
type VideoService struct {
	repo     ports.VideoRepository
	likes    ports.LikeRepository
	uploader ports.Uploader
	blobs    ports.BlobStore
	dedup    ports.ViewDeduper
	log      zerolog.Logger
}

func NewVideoService(
	repo ports.VideoRepository,
	likes ports.LikeRepository,
	uploader ports.Uploader,
	blobs ports.BlobStore,
	dedup ports.ViewDeduper,
	log zerolog.Logger,
) *VideoService {
	return &VideoService{repo: repo, likes: likes, uploader: uploader, blobs: blobs, dedup: dedup, log: log}
}

// Publish uploads the video file and its thumbnail, then persists the record.
// The two assets are unrelated media: the coordinator treats the count as a
// parameter, there is no special-casing for two.
func (s *VideoService) Publish(ctx context.Context, input ports.PublishVideoInput) (*domain.Video, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrInvalidInput)
	}

	var created *domain.Video
	err := s.uploader.CreateWithAssets(ctx,
		[]ports.AssetInput{
			{Name: "video", LocalPath: input.VideoPath, Required: true},
			{Name: "thumbnail", LocalPath: input.ThumbnailPath, Required: true},
		},
		func(ctx context.Context, assets map[string]domain.Asset) error {
			video := &domain.Video{
				OwnerID:     input.OwnerID,
				Title:       title,
				Description: description,
				VideoFile:   assets["video"],
				Thumbnail:   assets["thumbnail"],
				Published:   true,
			}
			var err error
			created, err = s.repo.Create(ctx, video)
			return err
		})
	if err != nil {
		return nil, err
	}

	metrics.VideosPublishedTotal.Inc()
	s.log.Info().Str("video_id", created.ID).Str("owner_id", created.OwnerID).Msg("video published")
	return created, nil
}

func (s *VideoService) Get(ctx context.Context, id string) (*domain.Video, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *VideoService) List(ctx context.Context, filter ports.ListVideosFilter) (*ports.ListVideosResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListVideosResult{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *VideoService) Update(ctx context.Context, requesterID, id, title, description string) (*domain.Video, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrInvalidInput)
	}

	if err := s.requireOwner(ctx, requesterID, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, title, description)
}

func (s *VideoService) TogglePublish(ctx context.Context, requesterID, id string) (*domain.Video, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != requesterID {
		return nil, domain.ErrForbidden
	}

	if err := s.repo.SetPublished(ctx, id, !video.Published); err != nil {
		return nil, err
	}
	video.Published = !video.Published
	return video, nil
}

// Delete removes the record first, then the blobs best-effort: a dangling
// blob is recoverable garbage, a dangling record pointing at deleted media
// is a broken page.
func (s *VideoService) Delete(ctx context.Context, requesterID, id string) error {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if video.OwnerID != requesterID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, ref := range []string{video.VideoFile.Ref, video.Thumbnail.Ref} {
		if ref == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, ref); err != nil {
			s.log.Warn().Err(err).Str("video_id", id).Str("ref", ref).Msg("failed to delete video blob")
		}
	}
	return nil
}

// RegisterView counts one playback view, skipping viewers already counted
// within the dedup window. Dedup store failures are logged and the view is
// counted anyway: losing a counter increment is worse than double counting.
func (s *VideoService) RegisterView(ctx context.Context, event domain.ViewEvent) error {
	seen, err := s.dedup.Seen(ctx, event.VideoID, event.ViewerID)
	if err != nil {
		s.log.Warn().Err(err).Str("video_id", event.VideoID).Msg("view dedup check failed, counting anyway")
	} else if seen {
		return nil
	}

	if err := s.repo.IncrementViews(ctx, event.VideoID); err != nil {
		return fmt.Errorf("register view: %w", err)
	}

	if err := s.dedup.Mark(ctx, event.VideoID, event.ViewerID); err != nil {
		s.log.Warn().Err(err).Str("video_id", event.VideoID).Msg("failed to set view dedup key")
	}
	return nil
}

func (s *VideoService) ChannelStats(ctx context.Context, ownerID string) (*ports.ChannelStats, error) {
	videos, views, err := s.repo.OwnerStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids, err := s.repo.IDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	likes, err := s.likes.CountByTargetIDs(ctx, domain.LikeTargetVideo, ids)
	if err != nil {
		return nil, err
	}

	return &ports.ChannelStats{TotalVideos: videos, TotalViews: views, TotalLikes: likes}, nil
}

func (s *VideoService) requireOwner(ctx context.Context, requesterID, id string) error {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if video.OwnerID != requesterID {
		return domain.ErrForbidden
	}
	return nil
}
