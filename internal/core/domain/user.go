package domain

import "time"

// User models a platform account. PasswordHash and RefreshToken never leave
// the persistence boundary: both are excluded from JSON and the service layer
// returns users through Sanitized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullname"`
	PasswordHash string    `json:"-"`
	RefreshToken string    `json:"-"`
	Avatar       Asset     `json:"avatar"`
	CoverImage   Asset     `json:"cover_image,omitzero"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Asset is a stable locator for a stored blob: the public URL plus the
// reference the blob store accepts for deletion.
type Asset struct {
	URL string `json:"url" bson:"url"`
	Ref string `json:"-" bson:"ref"`
}

// Sanitized returns a copy safe to hand to callers outside the credential
// boundary.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	clone.RefreshToken = ""
	return &clone
}
