// Package utils holds small helpers shared across services.
package utils

import "math/rand/v2"

// RandomInt returns a random integer between min and max (inclusive).
// It is not suitable for secrets.
func RandomInt(min, max int) int {
	if min >= max {
		return min
	}
	return rand.IntN(max-min+1) + min //nolint:gosec // identifiers, not security critical
}

// RandomString returns n characters drawn uniformly from charset
func RandomString(charset string, n int) string {
	if charset == "" || n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[RandomInt(0, len(charset)-1)]
	}
	return string(b)
}
