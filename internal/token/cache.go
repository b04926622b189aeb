package token

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultCachePath is relative to the working directory.
const DefaultCachePath = "access_token.json"

type cacheFile struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	ExpiresIn   int64  `json:"expires_in"`
	CreatedAt   int64  `json:"created_at"`
}

func readCache(fs afero.Fs, path string) (Token, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrCacheMiss, err)
	}

	var entry cacheFile
	if err := json.Unmarshal(b, &entry); err != nil {
		return Token{}, fmt.Errorf("%w: %s: %v", ErrCacheMiss, path, err)
	}

	if entry.AccessToken == "" {
		return Token{}, fmt.Errorf("%w: %s has no access_token", ErrCacheMiss, path)
	}

	return Token{
		AccessToken: entry.AccessToken,
		TokenType:   entry.TokenType,
		Scope:       entry.Scope,
		ExpiresIn:   entry.ExpiresIn,
		IssuedAt:    entry.CreatedAt,
	}, nil
}

func writeCache(fs afero.Fs, path string, t Token) error {
	entry := cacheFile{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		Scope:       t.Scope,
		ExpiresIn:   t.ExpiresIn,
		CreatedAt:   t.IssuedAt,
	}

	b, err := json.MarshalIndent(entry, "", "    ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token cache dir: %w", err)
		}
	}

	if err := afero.WriteFile(fs, path, b, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}

	// WriteFile only applies the mode to new files
	if err := fs.Chmod(path, os.FileMode(0o600)); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}

	return nil
}
