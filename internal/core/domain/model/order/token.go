package order

import (
	"crypto/rand"
	"fmt"
	"io"

	"marketplace/internal/pkg/errs"
)

// TokenLength is the size of generated tracking codes and the column width.
const TokenLength = 8

// tokenAlphabet drops 0/O and 1/I; 32 symbols keep byte-to-symbol mapping unbiased.
const tokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// TokenGenerator draws candidate tracking codes. Uniqueness is enforced by storage.
type TokenGenerator interface {
	NewToken() (string, error)
}

type RandomTokenGenerator struct {
	source io.Reader
}

func NewRandomTokenGenerator() RandomTokenGenerator {
	return RandomTokenGenerator{source: rand.Reader}
}

func (g RandomTokenGenerator) NewToken() (string, error) {
	buf := make([]byte, TokenLength)
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}

// ValidateToken accepts generated codes as well as legacy lowercase hex codes.
func ValidateToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token_number")
	}
	if len(token) > TokenLength {
		return errs.NewValueIsOutOfRangeError("token_number", len(token), 1, TokenLength)
	}
	for _, r := range token {
		isAlnum := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			return errs.NewValueIsInvalidErrorWithCause("token_number", fmt.Errorf("%q is not alphanumeric", r))
		}
	}
	return nil
}
