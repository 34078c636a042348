package ports

import (
	"context"

	"github.com/vidtube/platform/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Avatar is
// required, cover image optional; both paths point at locally staged files.
type RegisterInput struct {
	FullName       string
	Email          string
	Username       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// UserService defines account use-cases outside the session lifecycle.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error)
	// UpdateAvatar and UpdateCoverImage replace a profile asset through the
	// upload transaction; the superseded blob is deleted best-effort after
	// the new record is committed.
	UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.User, error)
}
