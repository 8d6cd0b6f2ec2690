// Package auth implements password credentials and opaque session tokens.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. A credential is "<salt>:<hex digest>" where salt is
// the hex form of SaltSize random bytes and is fed to scrypt as text.
const (
	SaltSize = 16
	KeyLen   = 64

	scryptN = 16384
	scryptR = 8
	scryptP = 1
)

// HashPassword derives a fresh salted credential for password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hashWithSalt(password, hex.EncodeToString(salt))
}

func hashWithSalt(password, salt string) (string, error) {
	dk, err := derive(password, salt)
	if err != nil {
		return "", err
	}
	return salt + ":" + hex.EncodeToString(dk), nil
}

func derive(password, salt string) ([]byte, error) {
	dk, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, KeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return dk, nil
}

// VerifyPassword reports whether password matches credential. Malformed
// credentials and derivation failures verify as false.
func VerifyPassword(password, credential string) bool {
	salt, digest, ok := strings.Cut(credential, ":")
	if !ok || salt == "" || digest == "" {
		return false
	}
	want, err := hex.DecodeString(digest)
	if err != nil || len(want) != KeyLen {
		return false
	}
	got, err := derive(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(want, got) == 1
}
