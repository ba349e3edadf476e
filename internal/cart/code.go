package cart

import (
	"crypto/rand"
	"fmt"

	"github.com/shoppix/shoppix-backend/pkg/db/models"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCartCode returns a random uppercase alphanumeric cart code of
// the fixed client-facing length.
func GenerateCartCode() (string, error) {
	buf := make([]byte, models.CartCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
