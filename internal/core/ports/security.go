package ports

import "time"

// PasswordHasher turns plaintext passwords into salted one-way hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer mints session tokens bound to a user id.
type TokenIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
}

// TokenVerifier validates a session token and returns the user id it carries.
// A failed check is reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
