package auth

import (
	"crypto/subtle"

	"github.com/go-faster/errors"
)

// ErrUnauthorized is returned when the shared access token is missing or wrong.
var ErrUnauthorized = errors.New("invalid or missing access token")

// StaticToken verifies requests against a single shared secret that is fixed
// at construction time.
type StaticToken struct {
	expected string
}

// NewStaticToken returns a StaticToken accepting exactly expected. An empty
// expected value is rejected so a misconfigured server never accepts an
// empty token.
func NewStaticToken(expected string) (*StaticToken, error) {
	if expected == "" {
		return nil, errors.New("access token must not be empty")
	}
	return &StaticToken{expected: expected}, nil
}

// Verify returns ErrUnauthorized unless token matches the configured value.
func (s *StaticToken) Verify(token string) error {
	if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.expected)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
