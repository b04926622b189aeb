package secrets

// PlainSecretProvider returns the name itself as the secret, for values given
// inline on the command line or in a config file.
type PlainSecretProvider struct {
	GenericConfig
}

func NewPlainSecretProviderFromConfig(cfg GenericConfig) *PlainSecretProvider {
	return &PlainSecretProvider{
		GenericConfig: cfg,
	}
}

var _ Source = &PlainSecretProvider{}

func (fp *PlainSecretProvider) GetSecret(name string) (secret []byte, err error) {
	return fp.decode([]byte(name))
}
