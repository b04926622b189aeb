package token

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/youmark/pkcs8"
)

const (
	pemBlockTypeEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"
	pemBlockTypePrivateKey          = "PRIVATE KEY"
	pemBlockTypeRSAPrivateKey       = "RSA PRIVATE KEY"
)

// parsePrivateKey reads the first PEM block of data as an RSA private key.
// PKCS#1, PKCS#8 and password protected PKCS#8 keys are accepted.
func parsePrivateKey(data []byte, password string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM data found")
	}

	var (
		key interface{}
		err error
	)

	switch block.Type {
	case pemBlockTypeEncryptedPrivateKey:
		if password == "" {
			return nil, errors.New("key is encrypted and no password was given")
		}

		key, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes, []byte(password))
	case pemBlockTypePrivateKey:
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case pemBlockTypeRSAPrivateKey:
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	default:
		return nil, fmt.Errorf("unsupported PEM block %q", block.Type)
	}

	if err != nil {
		return nil, err
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("key is %T, RS256 needs an RSA key", key)
	}

	return rsaKey, nil
}
