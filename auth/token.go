package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenSize is the number of random bytes behind a session token.
const TokenSize = 32

// GenerateToken returns TokenSize random bytes as lowercase hex.
func GenerateToken() (string, error) {
	b := make([]byte, TokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
