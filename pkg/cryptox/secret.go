package cryptox

import (
	"crypto/sha256"
	"errors"
)

// MinPassphraseLength is the shortest signing passphrase accepted. Anything
// shorter makes offline guessing of the HMAC key practical.
const MinPassphraseLength = 16

var ErrWeakPassphrase = errors.New("cryptox: signing passphrase too short")

// DeriveSigningKey stretches a configured passphrase into a fixed 32-byte
// HMAC-SHA256 key. Both services of a deployment must be configured with the
// same passphrase to produce the same key, but only the token authority
// actually holds it at runtime.
func DeriveSigningKey(passphrase string) ([]byte, error) {
	if len(passphrase) < MinPassphraseLength {
		return nil, ErrWeakPassphrase
	}
	sum := sha256.Sum256([]byte(passphrase))
	return sum[:], nil
}
