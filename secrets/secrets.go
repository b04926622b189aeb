// Package secrets reads credentials, such as the service account private key,
// from the places operators keep them.
package secrets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

var ErrNotFound = errors.New("secret not found")

// Source is implemented by anything that can look up a secret by name.
type Source interface {
	GetSecret(name string) (secret []byte, err error)
}

type GenericConfig struct {
	Base64           bool `yaml:"base64"`
	Base64URLEncoded bool `yaml:"base64UrlEncoded"`
	Base64Raw        bool `yaml:"base64Raw"`
}

func (c GenericConfig) encoder() *base64.Encoding {
	switch {
	case c.Base64URLEncoded && c.Base64Raw:
		return base64.RawURLEncoding
	case c.Base64URLEncoded:
		return base64.URLEncoding
	case c.Base64Raw:
		return base64.RawStdEncoding
	default:
		return base64.StdEncoding
	}
}

// decode returns b unchanged unless the config asks for base64.
func (c GenericConfig) decode(b []byte) ([]byte, error) {
	if !c.Base64 {
		return b, nil
	}

	result := make([]byte, c.encoder().DecodedLen(len(b)))

	written, err := c.encoder().Decode(result, b)
	if err != nil {
		return nil, fmt.Errorf("base64 decoding: %w", err)
	}

	return result[:written], nil
}

const (
	KindFile       = "file"
	KindEnv        = "env"
	KindPlain      = "plain"
	KindVault      = "vault"
	KindAWSSM      = "awssm"
	KindKubernetes = "kubernetes"
)

// Registry resolves secret references of the form "kind:name". A reference
// without a known kind prefix is a file path.
type Registry struct {
	mu        sync.Mutex
	sources   map[string]Source
	factories map[string]func() (Source, error)
}

func NewRegistry(fs afero.Fs) *Registry {
	r := &Registry{
		sources:   map[string]Source{},
		factories: map[string]func() (Source, error){},
	}

	r.Register(KindFile, NewFileSecretProvider(fs, FileConfig{}))
	r.Register(KindEnv, NewEnvSecretProviderFromConfig(GenericConfig{}))
	r.Register(KindPlain, NewPlainSecretProviderFromConfig(GenericConfig{}))

	return r
}

// Register adds or replaces the source used for kind.
func (r *Registry) Register(kind string, source Source) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources[kind] = source
}

// RegisterFactory defers building the source for kind until a reference
// needs it, so remote providers are only dialed when used.
func (r *Registry) RegisterFactory(kind string, factory func() (Source, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[kind] = factory
}

// Parse splits ref into its kind and name.
func (r *Registry) Parse(ref string) (kind, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if k, n, ok := strings.Cut(ref, ":"); ok {
		_, source := r.sources[k]
		_, factory := r.factories[k]

		if source || factory {
			return k, n
		}
	}

	return KindFile, ref
}

func (r *Registry) source(kind string) (Source, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sources[kind]; ok {
		return s, nil
	}

	factory, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("unknown secret source %q", kind)
	}

	s, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	r.sources[kind] = s

	return s, nil
}

// GetSecret resolves ref and reads the secret it names.
func (r *Registry) GetSecret(ref string) ([]byte, error) {
	kind, name := r.Parse(ref)

	s, err := r.source(kind)
	if err != nil {
		return nil, err
	}

	secret, err := s.GetSecret(name)
	if err != nil {
		return nil, err
	}

	if secret == nil {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}

	return secret, nil
}
