package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

// UserService implements account management. Media-backed mutations (register,
// avatar/cover updates) run through the upload transaction coordinator.
type UserService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	uploader ports.Uploader
	blobs    ports.BlobStore
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, uploader ports.Uploader, blobs ports.BlobStore, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, uploader: uploader, blobs: blobs, log: log}
}

// Register creates an account with a required avatar and optional cover
// image. Required text fields are rejected identically whether absent or
// whitespace-only.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(strings.ToLower(input.Username))

	if fullName == "" || email == "" || username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput)
	}

	// Check uniqueness before any upload: a doomed request should not do
	// partial work. The unique index still backstops the race.
	for _, identifier := range []string{username, email} {
		if _, err := s.repo.FindByIdentifier(ctx, identifier); err == nil {
			return nil, domain.ErrUserExists
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var created *domain.User
	err = s.uploader.CreateWithAssets(ctx,
		[]ports.AssetInput{
			{Name: "avatar", LocalPath: input.AvatarPath, Required: true},
			{Name: "cover_image", LocalPath: input.CoverImagePath},
		},
		func(ctx context.Context, assets map[string]domain.Asset) error {
			user := &domain.User{
				Username:     username,
				Email:        email,
				FullName:     fullName,
				PasswordHash: hash,
				Avatar:       assets["avatar"],
				CoverImage:   assets["cover_image"],
			}
			created, err = s.repo.Create(ctx, user)
			return err
		})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created.Sanitized(), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// ChangePassword verifies the old password before storing the new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrInvalidInput)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, oldPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}

func (s *UserService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(strings.ToLower(email))
	if fullName == "" || email == "" {
		return nil, fmt.Errorf("%w: full name and email are required", domain.ErrInvalidInput)
	}

	user, err := s.repo.UpdateAccount(ctx, userID, fullName, email)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// UpdateAvatar replaces the avatar through a single-asset upload transaction.
// The superseded blob is deleted best-effort once the new record is committed.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.User, error) {
	return s.replaceProfileAsset(ctx, userID, "avatar", localPath,
		func(u *domain.User) domain.Asset { return u.Avatar },
		s.repo.UpdateAvatar)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.User, error) {
	return s.replaceProfileAsset(ctx, userID, "cover_image", localPath,
		func(u *domain.User) domain.Asset { return u.CoverImage },
		s.repo.UpdateCoverImage)
}

func (s *UserService) replaceProfileAsset(
	ctx context.Context,
	userID, name, localPath string,
	current func(*domain.User) domain.Asset,
	update func(context.Context, string, domain.Asset) (*domain.User, error),
) (*domain.User, error) {
	previous, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var updated *domain.User
	err = s.uploader.CreateWithAssets(ctx,
		[]ports.AssetInput{{Name: name, LocalPath: localPath, Required: true}},
		func(ctx context.Context, assets map[string]domain.Asset) error {
			updated, err = update(ctx, userID, assets[name])
			return err
		})
	if err != nil {
		return nil, err
	}

	// Commit succeeded: the old blob is unreachable now, drop it.
	if old := current(previous); old.Ref != "" {
		if err := s.blobs.Delete(ctx, old.Ref); err != nil {
			s.log.Warn().Err(err).Str("ref", old.Ref).Msg("failed to delete superseded profile asset")
		}
	}

	return updated.Sanitized(), nil
}
