package domain

import "errors"

// Sentinel errors for the whole platform. Store and blob-store failures are
// translated into these at the infrastructure boundary; the HTTP layer maps
// them onto status codes in one place.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")

	// ErrInvalidToken covers malformed, expired, or wrongly-signed tokens.
	// ErrTokenMismatch covers a well-formed refresh token that no longer
	// matches the stored value: a superseded token being replayed. The two
	// are kept distinct because a mismatch is a security-relevant signal.
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenMismatch   = errors.New("refresh token mismatch")
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrMissingAsset      = errors.New("required asset is missing")
	ErrUploadFailed      = errors.New("asset upload failed")
	ErrPersistenceFailed = errors.New("record persistence failed")

	ErrVideoNotFound   = errors.New("video not found")
	ErrTweetNotFound   = errors.New("tweet not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("access forbidden")
)
