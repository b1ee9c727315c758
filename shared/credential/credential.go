// Package credential hashes administrator passwords with unsalted SHA-256
// for compatibility with the existing admins table. This is a weak scheme:
// it is vulnerable to rainbow-table attacks and is used only to verify
// administrative logins, never to protect the guest passport field (that is
// shared/envelope's job).
package credential

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Hash returns the hex-encoded SHA-256 digest of the password.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))

	return hex.EncodeToString(sum[:])
}

// Verify checks the password against a stored hex digest in constant time.
func Verify(password, storedHash string) error {
	if subtle.ConstantTimeCompare([]byte(Hash(password)), []byte(storedHash)) != 1 {
		return ErrInvalidCredentials
	}

	return nil
}
