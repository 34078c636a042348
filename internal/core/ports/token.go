package ports

// TokenClass distinguishes the two bearer credential kinds. Access tokens are
// short-lived and stateless; refresh tokens are long-lived and server-tracked.
type TokenClass string

const (
	TokenClassAccess  TokenClass = "access"
	TokenClassRefresh TokenClass = "refresh"
)

// TokenClaims is the identity payload embedded in a signed token.
type TokenClaims struct {
	UserID   string
	Username string
}

// TokenIssuer creates and verifies signed, time-bounded tokens. Verify fails
// with domain.ErrInvalidToken for anything malformed, expired, wrongly
// signed, or of the wrong class.
type TokenIssuer interface {
	Sign(claims TokenClaims, class TokenClass) (string, error)
	Verify(token string, expected TokenClass) (*TokenClaims, error)
}

// PasswordHasher provides one-way hashing and constant-time verification.
// Compare returns domain.ErrInvalidCredentials on mismatch.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}
