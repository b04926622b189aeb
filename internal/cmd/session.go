package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/goware/urlx"

	"github.com/michaelrosejr/pytellum/api"
	"github.com/michaelrosejr/pytellum/internal/dynamic"
	"github.com/michaelrosejr/pytellum/internal/logging"
	"github.com/michaelrosejr/pytellum/internal/token"
	"github.com/michaelrosejr/pytellum/secrets"
)

// session holds what a data command needs: an API client backed by a token
// manager, and the timezone used to display dates.
type session struct {
	client   api.Client
	tokens   *token.Manager
	location *time.Location
}

func newSession(cli *CLI, options *Options) (*session, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	loc, err := options.location()
	if err != nil {
		return nil, err
	}

	baseURL, err := urlx.NormalizeString(options.BaseURL)
	if err != nil {
		return nil, Error{
			Cause:         "invalid configuration",
			OriginalError: fmt.Errorf("%w: base-url %q: %v", ErrConfiguration, options.BaseURL, err),
		}
	}

	policy := api.NewRetryPolicy()
	policy.MaxRetries = options.Retries
	httpClient := api.NewHTTPClient(options.Timeout, policy)

	registry := newSecretRegistry(cli, options.Secrets)
	kind, _ := registry.Parse(options.PrivateKeyFile)
	logging.Debugf("private key source: %s", kind)

	tokens, err := token.NewManager(token.Config{
		Issuer:             options.APIUID,
		AuthURL:            options.AuthURL,
		PrivateKey:         registry,
		PrivateKeyRef:      options.PrivateKeyFile,
		PrivateKeyPassword: options.PrivateKeyPassword,
		CachePath:          options.TokenCache,
		Fs:                 cli.Fs,
		Persist:            options.PersistToken,
		HTTPClient:         httpClient,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		client: api.Client{
			URL:    baseURL,
			Tokens: tokens,
			HTTP:   httpClient,
		},
		tokens:   tokens,
		location: loc,
	}, nil
}

func newSecretRegistry(cli *CLI, cfg SecretsOptions) *secrets.Registry {
	registry := secrets.NewRegistry(cli.Fs)

	registry.RegisterFactory(secrets.KindVault, func() (secrets.Source, error) {
		vaultConfig := secrets.NewVaultConfig()
		if cfg.Vault.SecretMount != "" {
			vaultConfig.SecretMount = cfg.Vault.SecretMount
		}
		vaultConfig.Token = cfg.Vault.Token
		vaultConfig.Namespace = cfg.Vault.Namespace
		vaultConfig.Address = cfg.Vault.Address

		return secrets.NewVaultSecretProviderFromConfig(vaultConfig)
	})

	registry.RegisterFactory(secrets.KindAWSSM, func() (secrets.Source, error) {
		return secrets.NewAWSSecretsManagerFromConfig(cfg.AWS)
	})

	registry.RegisterFactory(secrets.KindKubernetes, func() (secrets.Source, error) {
		k8sConfig := secrets.NewKubernetesConfig()
		if cfg.Kubernetes.Namespace != "" {
			k8sConfig.Namespace = cfg.Kubernetes.Namespace
		}

		return secrets.NewKubernetesSecretProviderFromConfig(k8sConfig)
	})

	return registry
}

// tokenError turns failures to obtain an access token into user facing
// errors. Other errors are returned unchanged.
func tokenError(err error) error {
	var authErr *token.AuthServerError

	switch {
	case errors.Is(err, token.ErrKeyRead):
		return Error{
			Cause:         "could not read the private key",
			OriginalError: err,
			Suggestion:    "Check --private-key-file (PRIVATE_KEY_FILE) and --private-key-password.",
		}
	case errors.As(err, &authErr):
		return Error{
			Cause:         "the authorization server did not issue an access token",
			OriginalError: err,
			Suggestion:    "Check --api-uid (API_UID) and that the private key matches the service account.",
		}
	}

	return err
}

// emptyOnAPIError logs an error response from the data API and stands in an
// empty object for it, so the command prints an empty result. Errors other
// than API responses are returned.
func emptyOnAPIError(node *dynamic.Node, err error) (*dynamic.Node, error) {
	if err == nil {
		return node, nil
	}

	var apiErr api.Error
	if errors.As(err, &apiErr) {
		logging.Errorf("%s", apiErr.Error())
		return dynamic.Wrap(map[string]interface{}{}), nil
	}

	return nil, tokenError(err)
}

// items returns the list under key, or nothing when node has no such list.
func items(node *dynamic.Node, key string) []*dynamic.Node {
	list, err := node.Get(key)
	if err != nil {
		return nil
	}

	return list.Items()
}
