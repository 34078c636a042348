package ports

import (
	"context"

	"github.com/vidtube/platform/internal/core/domain"
)

// UserRepository defines persistence operations on the credential store.
//
// The refresh token is modeled as a single-value register per user. Plain
// overwrites go through UpdateRefreshToken; rotation goes through
// ReplaceRefreshToken, which is an atomic compare-and-swap so concurrent
// rotations against the same identity are serialized at the store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByIdentifier looks a user up by username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// UpdateRefreshToken overwrites the stored refresh token. An empty token
	// clears it; clearing an already-clear token is a no-op.
	UpdateRefreshToken(ctx context.Context, id, token string) error
	// ReplaceRefreshToken swaps the stored refresh token from current to next
	// in one atomic operation. Returns domain.ErrTokenMismatch when the
	// stored value is no longer current.
	ReplaceRefreshToken(ctx context.Context, id, current, next string) error

	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateAccount(ctx context.Context, id, fullName, email string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id string, avatar domain.Asset) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, id string, cover domain.Asset) (*domain.User, error)
}
