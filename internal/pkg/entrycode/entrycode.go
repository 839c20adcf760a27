// Package entrycode generates the short user-facing codes used for manual
// and NFC check-in.
package entrycode

import (
	"crypto/rand"
	"math/big"
)

const (
	Length = 8

	charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generate returns a random upper-case alphanumeric code of Length characters.
func Generate() (string, error) {
	code := make([]byte, Length)
	max := big.NewInt(int64(len(charset)))

	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = charset[n.Int64()]
	}

	return string(code), nil
}
