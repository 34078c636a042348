package ports

import (
	"context"

	"github.com/vidtube/platform/internal/core/domain"
)

// TokenPair is one issued (access, refresh) pair for one identity.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionService owns the authenticated-session lifecycle. It is the only
// component allowed to mutate a user's stored refresh token.
type SessionService interface {
	// Authenticate verifies credentials and issues a fresh token pair,
	// persisting the refresh token (and implicitly invalidating any prior
	// one). The returned user has sensitive fields cleared.
	Authenticate(ctx context.Context, identifier, password string) (*TokenPair, *domain.User, error)
	// Rotate exchanges a valid, currently-stored refresh token for a new
	// pair (rotation-on-use). A superseded token fails with
	// domain.ErrTokenMismatch.
	Rotate(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Terminate revokes the user's refresh token. Idempotent.
	Terminate(ctx context.Context, userID string) error
}
