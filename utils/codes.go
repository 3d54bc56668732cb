package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const confirmationCharset = "0123456789"

// ConfirmationCodeLength is the length of the human-facing booking code.
const ConfirmationCodeLength = 10

// GenerateConfirmationCode returns a random numeric string of length n.
// Uses crypto/rand with big.Int to avoid modulo bias.
func GenerateConfirmationCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid code length")
	}
	var sb strings.Builder
	charsetLen := big.NewInt(int64(len(confirmationCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(confirmationCharset[num.Int64()])
	}
	return sb.String(), nil
}

// IsValidConfirmationCodeFormat reports whether code looks like a code we
// could have issued: exactly ConfirmationCodeLength digits.
func IsValidConfirmationCodeFormat(code string) bool {
	code = strings.TrimSpace(code)
	if len(code) != ConfirmationCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
