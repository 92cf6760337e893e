// Package security holds the small crypto helpers the server needs at boot.
package security

import (
	"crypto/rand"
	"errors"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errBadAlphabet    = errors.New("alphabet must have between 1 and 256 characters")
)

// RandomString draws each character from the alphabet with crypto/rand.
// Bytes from the biased tail of the 0-255 range are discarded and redrawn,
// so every character is equally likely.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errBadAlphabet
	}
	if length == 0 {
		return "", nil
	}

	// Largest multiple of len(alphabet) that fits in a byte; zero means 256
	// divides evenly and nothing needs rejecting.
	cutoff := byte(256 - 256%len(alphabet))

	result := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(result) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if cutoff != 0 && b >= cutoff {
				continue
			}
			result = append(result, alphabet[int(b)%len(alphabet)])
			if len(result) == length {
				break
			}
		}
	}
	return string(result), nil
}
