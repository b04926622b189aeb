package secrets

import (
	"fmt"
	"os"
	"regexp"
)

// EnvSecretProvider reads secrets from environment variables.
type EnvSecretProvider struct {
	GenericConfig
}

func NewEnvSecretProviderFromConfig(cfg GenericConfig) *EnvSecretProvider {
	return &EnvSecretProvider{
		GenericConfig: cfg,
	}
}

var _ Source = &EnvSecretProvider{}

var invalidNameChars = regexp.MustCompile(`[^\w\d-]`)

func (fp *EnvSecretProvider) GetSecret(name string) (secret []byte, err error) {
	name = invalidNameChars.ReplaceAllString(name, "_")

	value, present := os.LookupEnv(name)
	if !present {
		return nil, fmt.Errorf("env %q: %w", name, ErrNotFound)
	}

	result, err := fp.decode([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("env %q: %w", name, err)
	}

	return result, nil
}
