package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/api/metrics"
	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

// SessionService orchestrates login, logout, and refresh-token rotation. It
// is the sole owner of refresh-token mutation on a user record.
type SessionService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewSessionService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *SessionService {
	return &SessionService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Authenticate verifies credentials and issues a fresh access+refresh pair.
// The new refresh token overwrites any previously stored one, so at most one
// refresh token is valid per user at any instant.
func (s *SessionService) Authenticate(ctx context.Context, identifier, password string) (*ports.TokenPair, *domain.User, error) {
	identifier = strings.TrimSpace(strings.ToLower(identifier))
	if identifier == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, err
	}

	pair, err := s.issuePair(user.ID, user.Username)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.UpdateRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("session opened")

	return pair, user.Sanitized(), nil
}

// Rotate exchanges a presented refresh token for a new pair. The exact-value
// comparison against the stored token happens inside the store as a
// compare-and-swap, so two concurrent rotations with the same token are
// serialized there: at most one wins, the other fails with ErrTokenMismatch.
func (s *SessionService) Rotate(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, ports.TokenClassRefresh)
	if err != nil {
		metrics.TokenRotationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	pair, err := s.issuePair(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceRefreshToken(ctx, user.ID, refreshToken, pair.RefreshToken); err != nil {
		if errors.Is(err, domain.ErrTokenMismatch) {
			// A well-formed token that no longer matches the stored value is
			// a replay of a superseded token: security-relevant, not noise.
			metrics.TokenRotationsTotal.WithLabelValues("mismatch").Inc()
			s.log.Warn().Str("user_id", user.ID).Msg("stale refresh token presented")
		}
		return nil, err
	}

	metrics.TokenRotationsTotal.WithLabelValues("success").Inc()
	return pair, nil
}

// Terminate revokes the stored refresh token, invalidating any outstanding
// one. Terminating an already-terminated session is a no-op.
func (s *SessionService) Terminate(ctx context.Context, userID string) error {
	if err := s.repo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return fmt.Errorf("terminate session: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("session terminated")
	return nil
}

func (s *SessionService) issuePair(userID, username string) (*ports.TokenPair, error) {
	claims := ports.TokenClaims{UserID: userID, Username: username}

	access, err := s.tokens.Sign(claims, ports.TokenClassAccess)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokens.Sign(claims, ports.TokenClassRefresh)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
