// Package token obtains and caches the bearer token used to call the API.
//
// Tokens come from a JWT-bearer grant: a short lived assertion signed with
// the service account's RSA key is exchanged at the authorization endpoint
// for an access token. The Manager keeps the current token in memory and in
// a cache file, and requests a new one when less than ExpiryMargin of its
// lifetime is left.
package token

import (
	"time"

	"golang.org/x/oauth2"
)

const (
	// ExpiryMargin is the minimum remaining lifetime of a token handed out
	// by ValidToken.
	ExpiryMargin = 60 * time.Second

	// AssertionLifetime is how long the signed assertion itself is valid.
	AssertionLifetime = 60 * time.Second

	Scope     = "admin_read"
	GrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"
)

// Token is an access token and the time it was issued. A Token is a value;
// refreshing replaces it rather than modifying it.
type Token struct {
	AccessToken string
	TokenType   string
	Scope       string
	ExpiresIn   int64 // seconds
	IssuedAt    int64 // unix seconds
}

// ExpiresAt is IssuedAt plus ExpiresIn.
func (t Token) ExpiresAt() time.Time {
	return time.Unix(t.IssuedAt+t.ExpiresIn, 0)
}

// Valid reports whether t can be used at now with at least margin to spare.
func (t Token) Valid(now time.Time, margin time.Duration) bool {
	if t.AccessToken == "" {
		return false
	}

	return t.ExpiresAt().Add(-margin).After(now)
}

func (t Token) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		Expiry:      t.ExpiresAt(),
	}
}
