package token

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyRead is returned when the private key can not be read or parsed.
	ErrKeyRead = errors.New("read private key")

	// ErrCacheMiss is returned by LoadToken when the cache file is absent
	// or does not hold a token.
	ErrCacheMiss = errors.New("token cache miss")
)

// AuthServerError is returned when the authorization endpoint does not hand
// out a usable token.
type AuthServerError struct {
	StatusCode int
	Body       string
	Reason     string
}

func (e *AuthServerError) Error() string {
	msg := fmt.Sprintf("authorization server: %d", e.StatusCode)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if e.Body != "" {
		msg += " - " + e.Body
	}

	return msg
}
