package lobby

import (
	"crypto/rand"
	"fmt"
)

const (
	// CodeLength is the length of a lobby code.
	CodeLength = 6
	// codeAlphabet is the uppercase alphanumeric code character set.
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewCode generates a random 6-character uppercase alphanumeric lobby code.
// Uniqueness is NOT guaranteed here; the Directory checks the store and
// retries on collision.
//
// Postcondition: Returns a CodeLength-character code or a non-nil error if
// the system randomness source fails.
func NewCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading randomness: %w", err)
	}
	out := make([]byte, CodeLength)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
