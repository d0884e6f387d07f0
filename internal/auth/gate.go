package auth

import (
	"errors"
	"strings"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingToken   = errors.New("missing token")
	ErrMalformedToken = errors.New("invalid token format")
	ErrInvalidToken   = errors.New("invalid or expired token")
)

type Resolver interface {
	Resolve(token string) (string, bool)
}

// Authorize validates an Authorization header value and returns the token owner.
// The "Bearer " prefix is matched case-sensitively.
func Authorize(r Resolver, header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMalformedToken
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	if token == "" {
		return "", ErrMalformedToken
	}
	username, ok := r.Resolve(token)
	if !ok {
		return "", ErrInvalidToken
	}
	return username, nil
}
