package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetToken returns a 64-character hex string from 32 random bytes.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
