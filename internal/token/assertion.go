package token

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/goware/urlx"
	"gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

type scopeClaim struct {
	Scope string `json:"scope"`
}

// audience is the scheme and host name of the authorization endpoint. The
// port is not part of it.
func audience(authURL string) (string, error) {
	u, err := urlx.Parse(authURL)
	if err != nil {
		return "", fmt.Errorf("parse auth url: %w", err)
	}

	return u.Scheme + "://" + u.Hostname(), nil
}

// signAssertion builds the claim set for issuer and signs it with key.
func signAssertion(key *rsa.PrivateKey, issuer, authURL string, now time.Time) (string, error) {
	aud, err := audience(authURL)
	if err != nil {
		return "", err
	}

	options := &jose.SignerOptions{}

	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.RS256, Key: key}, options.WithType("JWT"))
	if err != nil {
		return "", fmt.Errorf("create signer: %w", err)
	}

	claim := jwt.Claims{
		Issuer:   issuer,
		Audience: jwt.Audience{aud},
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(AssertionLifetime)),
	}

	raw, err := jwt.Signed(signer).Claims(claim).Claims(scopeClaim{Scope: Scope}).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}

	return raw, nil
}
