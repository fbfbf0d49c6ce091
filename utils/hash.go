package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// ShareHashLength is the length of saved code-match hashes
const ShareHashLength = 10

// NewShareHash returns a random base62 string of the given length
func NewShareHash(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid hash length %d", length)
	}

	max := big.NewInt(int64(len(base62Alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random hash: %w", err)
		}
		buf[i] = base62Alphabet[n.Int64()]
	}
	return string(buf), nil
}

// IsShareHash reports whether s looks like a hash produced by NewShareHash
func IsShareHash(s string) bool {
	if len(s) != ShareHashLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return false
		}
	}
	return true
}
