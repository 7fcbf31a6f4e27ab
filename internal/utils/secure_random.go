package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecureRandomString returns lengthInBytes of cryptographically secure
// randomness, hex encoded, so the result is 2*lengthInBytes characters long.
// Reference and leave numbers derive their collision-resistant suffixes from it.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("random suffix length must be positive, got %d", lengthInBytes)
	}
	buf := make([]byte, lengthInBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
