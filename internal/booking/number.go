package booking

import (
	"crypto/rand"
	"fmt"
)

const (
	numberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	numberLength   = 8
)

// NewNumber generates a random 8-character booking number drawn from [A-Z0-9].
// Collisions are improbable (36^8 codes) but the create path still retries on
// a unique-violation from the database.
func NewNumber() (string, error) {
	buf := make([]byte, numberLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate booking number failed: %w", err)
	}
	for i, b := range buf {
		buf[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}
	return string(buf), nil
}
