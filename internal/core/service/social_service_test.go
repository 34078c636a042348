package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/core/domain"
)

type stubTweetRepo struct {
	mu     sync.Mutex
	seq    int
	tweets map[string]*domain.Tweet
}

func newStubTweetRepo() *stubTweetRepo {
	return &stubTweetRepo{tweets: make(map[string]*domain.Tweet)}
}

func (r *stubTweetRepo) Create(_ context.Context, t *domain.Tweet) (*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := *t
	copy.ID = fmt.Sprintf("tweet_%d", r.seq)
	r.tweets[copy.ID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubTweetRepo) FindByID(_ context.Context, id string) (*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[id]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTweetRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Tweet
	for _, t := range r.tweets {
		if t.OwnerID == ownerID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTweetRepo) Update(_ context.Context, id, content string) (*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[id]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	t.Content = content
	clone := *t
	return &clone, nil
}

func (r *stubTweetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tweets[id]; !ok {
		return domain.ErrTweetNotFound
	}
	delete(r.tweets, id)
	return nil
}

type stubCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[string]*domain.Comment
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := *c
	copy.ID = fmt.Sprintf("comment_%d", r.seq)
	r.comments[copy.ID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) ListByVideo(_ context.Context, videoID string, page, limit int) ([]*domain.Comment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.VideoID == videoID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCommentRepo) Update(_ context.Context, id, content string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	c.Content = content
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func TestTweetService_CreateAndUpdate(t *testing.T) {
	repo := newStubTweetRepo()
	svc := NewTweetService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "user_1", "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank content, got %v", err)
	}

	tweet, err := svc.Create(context.Background(), "user_1", " hello world ")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if tweet.Content != "hello world" {
		t.Fatalf("expected trimmed content, got %q", tweet.Content)
	}

	if _, err := svc.Update(context.Background(), "user_2", tweet.ID, "hijacked"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), "user_1", tweet.ID, "edited")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("unexpected content: %q", updated.Content)
	}
}

func TestTweetService_Delete(t *testing.T) {
	repo := newStubTweetRepo()
	svc := NewTweetService(repo, zerolog.Nop())

	tweet, _ := svc.Create(context.Background(), "user_1", "hello")

	if err := svc.Delete(context.Background(), "user_2", tweet.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user_1", tweet.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), "user_1", tweet.ID); !errors.Is(err, domain.ErrTweetNotFound) {
		t.Fatalf("expected ErrTweetNotFound, got %v", err)
	}
}

func TestCommentService_Add_RequiresExistingVideo(t *testing.T) {
	videos := newStubVideoRepo()
	svc := NewCommentService(newStubCommentRepo(), videos, zerolog.Nop())

	if _, err := svc.Add(context.Background(), "user_1", "ghost", "nice"); !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}

	video, _ := videos.Create(context.Background(), &domain.Video{OwnerID: "user_1"})
	comment, err := svc.Add(context.Background(), "user_2", video.ID, " nice video ")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if comment.Content != "nice video" || comment.VideoID != video.ID {
		t.Fatalf("unexpected comment: %+v", comment)
	}
}

func TestCommentService_OwnerChecks(t *testing.T) {
	videos := newStubVideoRepo()
	svc := NewCommentService(newStubCommentRepo(), videos, zerolog.Nop())

	video, _ := videos.Create(context.Background(), &domain.Video{OwnerID: "user_1"})
	comment, _ := svc.Add(context.Background(), "user_2", video.ID, "nice")

	if _, err := svc.Update(context.Background(), "user_3", comment.ID, "edited"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user_3", comment.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user_2", comment.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
}

func TestLikeService_Toggle(t *testing.T) {
	svc := NewLikeService(newStubLikeRepo(), zerolog.Nop())

	liked, err := svc.Toggle(context.Background(), "user_1", domain.LikeTargetVideo, "video_1")
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if !liked {
		t.Fatalf("expected liked=true on first toggle")
	}

	liked, err = svc.Toggle(context.Background(), "user_1", domain.LikeTargetVideo, "video_1")
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if liked {
		t.Fatalf("expected liked=false on second toggle")
	}
}

func TestLikeService_Toggle_InvalidTarget(t *testing.T) {
	svc := NewLikeService(newStubLikeRepo(), zerolog.Nop())

	if _, err := svc.Toggle(context.Background(), "user_1", "playlist", "x"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown target, got %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "user_1", domain.LikeTargetTweet, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty target id, got %v", err)
	}
}
