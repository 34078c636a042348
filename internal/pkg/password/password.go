// Package password wraps bcrypt hashing behind the ports.PasswordHasher
// contract so cryptographic behaviour stays out of the user entity.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/vidtube/platform/internal/core/domain"
)

// Hasher implements ports.PasswordHasher using bcrypt.
type Hasher struct {
	cost int
}

// NewHasher builds a Hasher. Costs outside bcrypt's valid range fall back to
// the bcrypt default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare verifies plain against a stored hash, returning
// domain.ErrInvalidCredentials on mismatch.
func (h *Hasher) Compare(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.ErrInvalidCredentials
		}
		return err
	}
	return nil
}
