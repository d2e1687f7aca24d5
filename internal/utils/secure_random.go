package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateSecureRandomDigits generates a cryptographically secure string of
// exactly count decimal digits, left padded with zeros. Drawing one bounded
// integer keeps the distribution uniform across the whole range.
func GenerateSecureRandomDigits(count int) (string, error) {
	if count <= 0 || count > 18 {
		return "", fmt.Errorf("count must be between 1 and 18")
	}
	bound := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(count)), nil)
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", fmt.Errorf("failed to read random digits: %w", err)
	}
	return fmt.Sprintf("%0*d", count, n), nil
}
