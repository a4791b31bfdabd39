package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// PasswordAlphabet omits characters that are easy to misread when a generated
// password is copied from a terminal (0/O, 1/l/I).
const PasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	size := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		pick, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[pick.Int64()]
	}
	return string(out), nil
}

// RandomPassword returns a password from PasswordAlphabet.
func RandomPassword(length int) (string, error) {
	return RandomString(length, PasswordAlphabet)
}
