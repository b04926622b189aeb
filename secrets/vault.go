package secrets

import (
	"fmt"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// VaultSecretProvider reads secrets stored in a Vault KV version 2 engine
// under the "data" key, e.g. written with
// `vault kv put secret/intellim-key data=@private_key.pem`.
type VaultSecretProvider struct {
	VaultConfig
	client *vault.Client
}

type VaultConfig struct {
	SecretMount string `yaml:"secret_mount" mapstructure:"secret_mount"` // mounting point. defaults to /secret
	Token       string `yaml:"token" mapstructure:"token"`
	Namespace   string `yaml:"namespace" mapstructure:"namespace"`
	Address     string `yaml:"address" mapstructure:"address"`
}

func NewVaultConfig() VaultConfig {
	return VaultConfig{
		SecretMount: "/secret",
	}
}

// NewVaultSecretProviderFromConfig builds a client for cfg. Empty Address and
// Token fall back to VAULT_ADDR and VAULT_TOKEN.
func NewVaultSecretProviderFromConfig(cfg VaultConfig) (*VaultSecretProvider, error) {
	vcfg := vault.DefaultConfig()
	if cfg.Address != "" {
		vcfg.Address = cfg.Address
	}

	c, err := vault.NewClient(vcfg)
	if err != nil {
		return nil, err
	}

	if cfg.Token != "" {
		c.SetToken(cfg.Token)
	}

	if len(cfg.Namespace) > 0 {
		c.SetNamespace(cfg.Namespace)
	}

	if cfg.SecretMount == "" {
		cfg.SecretMount = NewVaultConfig().SecretMount
	}

	return &VaultSecretProvider{
		VaultConfig: cfg,
		client:      c,
	}, nil
}

var _ Source = &VaultSecretProvider{}

func (v *VaultSecretProvider) GetSecret(name string) ([]byte, error) {
	name = nameEscape(name)
	path := fmt.Sprintf("%s/data/%s", strings.TrimSuffix(v.SecretMount, "/"), name)

	sec, err := v.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("vault: read %q: %w", path, err)
	}

	if sec == nil || sec.Data == nil {
		return nil, nil
	}

	if _, ok := sec.Data["data"]; !ok {
		return nil, nil
	}

	data, ok := sec.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("vault: secret data is unexpected not stored in a map")
	}

	if data, ok := data["data"].(string); ok {
		return []byte(data), nil
	}

	return nil, fmt.Errorf("vault: secret data is not a string")
}

func nameEscape(name string) string {
	return strings.ReplaceAll(strings.Trim(name, "/"), ":", "_")
}
