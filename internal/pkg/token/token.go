// Package token issues and verifies the signed bearer credentials backing
// sessions: short-lived stateless access tokens and long-lived refresh
// tokens. Each class is signed with its own secret and TTL.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

const defaultAccessTTL = 15 * time.Minute
const defaultRefreshTTL = 10 * 24 * time.Hour

// Issuer implements ports.TokenIssuer on top of golang-jwt with HS256.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewIssuer builds an Issuer. Non-positive TTLs fall back to defaults.
func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type sessionClaims struct {
	Username string `json:"username,omitempty"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

// Sign creates a signed token of the given class carrying the identity claim.
func (i *Issuer) Sign(claims ports.TokenClaims, class ports.TokenClass) (string, error) {
	secret, ttl, err := i.classParams(class)
	if err != nil {
		return "", err
	}

	now := time.Now()
	sc := sessionClaims{
		Username: claims.Username,
		TokenUse: string(class),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sc)
	return t.SignedString(secret)
}

// Verify parses a token, checks signature, expiry, and class, and returns the
// embedded identity claims. Any failure maps to domain.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string, expected ports.TokenClass) (*ports.TokenClaims, error) {
	secret, _, err := i.classParams(expected)
	if err != nil {
		return nil, err
	}

	var sc sessionClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &sc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if sc.TokenUse != string(expected) || sc.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{UserID: sc.Subject, Username: sc.Username}, nil
}

func (i *Issuer) classParams(class ports.TokenClass) ([]byte, time.Duration, error) {
	switch class {
	case ports.TokenClassAccess:
		return i.accessSecret, i.accessTTL, nil
	case ports.TokenClassRefresh:
		return i.refreshSecret, i.refreshTTL, nil
	default:
		return nil, 0, errors.New("token: unknown token class")
	}
}
