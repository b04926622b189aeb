package secrets

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
)

func TestRegistry_Parse(t *testing.T) {
	r := NewRegistry(afero.NewMemMapFs())
	r.RegisterFactory(KindVault, func() (Source, error) { return nil, errors.New("unused") })

	type testCase struct {
		ref  string
		kind string
		name string
	}

	testCases := []testCase{
		{ref: "private_key.pem", kind: KindFile, name: "private_key.pem"},
		{ref: "file:keys/sa.pem", kind: KindFile, name: "keys/sa.pem"},
		{ref: "env:INTELLIM_KEY", kind: KindEnv, name: "INTELLIM_KEY"},
		{ref: "plain:abc:def", kind: KindPlain, name: "abc:def"},
		{ref: "vault:intellim/key", kind: KindVault, name: "intellim/key"},
		{ref: `C:\keys\sa.pem`, kind: KindFile, name: `C:\keys\sa.pem`},
		{ref: "awssm:intellim", kind: KindFile, name: "awssm:intellim"},
	}

	for _, tc := range testCases {
		t.Run(tc.ref, func(t *testing.T) {
			kind, name := r.Parse(tc.ref)
			assert.Equal(t, kind, tc.kind)
			assert.Equal(t, name, tc.name)
		})
	}
}

func TestRegistry_GetSecret(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NilError(t, afero.WriteFile(fs, "private_key.pem", []byte("pem bytes"), 0o600))
	t.Setenv("INTELLIM_TEST_KEY", "from env")

	r := NewRegistry(fs)

	secret, err := r.GetSecret("private_key.pem")
	assert.NilError(t, err)
	assert.Equal(t, string(secret), "pem bytes")

	secret, err = r.GetSecret("file:private_key.pem")
	assert.NilError(t, err)
	assert.Equal(t, string(secret), "pem bytes")

	secret, err = r.GetSecret("env:INTELLIM_TEST_KEY")
	assert.NilError(t, err)
	assert.Equal(t, string(secret), "from env")

	secret, err = r.GetSecret("plain:inline")
	assert.NilError(t, err)
	assert.Equal(t, string(secret), "inline")

	_, err = r.GetSecret("missing.pem")
	assert.Assert(t, errors.Is(err, ErrNotFound))

	_, err = r.GetSecret("env:INTELLIM_TEST_KEY_MISSING")
	assert.Assert(t, errors.Is(err, ErrNotFound))
}

func TestRegistry_FactoryIsBuiltOnce(t *testing.T) {
	r := NewRegistry(afero.NewMemMapFs())

	calls := 0
	r.RegisterFactory(KindKubernetes, func() (Source, error) {
		calls++
		return NewPlainSecretProviderFromConfig(GenericConfig{}), nil
	})

	for i := 0; i < 3; i++ {
		secret, err := r.GetSecret("kubernetes:value")
		assert.NilError(t, err)
		assert.Equal(t, string(secret), "value")
	}

	assert.Equal(t, calls, 1)
}

func TestRegistry_FactoryError(t *testing.T) {
	r := NewRegistry(afero.NewMemMapFs())
	r.RegisterFactory(KindVault, func() (Source, error) { return nil, errors.New("no vault address") })

	_, err := r.GetSecret("vault:key")
	assert.Error(t, err, "vault: no vault address")
}

func TestNilSecretIsNotFound(t *testing.T) {
	r := NewRegistry(afero.NewMemMapFs())
	r.Register(KindAWSSM, nilSource{})

	_, err := r.GetSecret("awssm:gone")
	assert.Assert(t, errors.Is(err, ErrNotFound))
	assert.ErrorContains(t, err, `awssm "gone"`)
}

type nilSource struct{}

func (nilSource) GetSecret(string) ([]byte, error) {
	return nil, nil
}

func TestBase64Decoding(t *testing.T) {
	fs := afero.NewMemMapFs()
	encoded := base64.StdEncoding.EncodeToString([]byte("decoded"))
	assert.NilError(t, afero.WriteFile(fs, "keys/sa.b64", []byte(encoded), 0o600))

	fp := NewFileSecretProvider(fs, FileConfig{Path: "keys", GenericConfig: GenericConfig{Base64: true}})
	secret, err := fp.GetSecret("sa.b64")
	assert.NilError(t, err)
	assert.Equal(t, string(secret), "decoded")

	raw := base64.RawURLEncoding.EncodeToString([]byte{0xfb, 0xff})
	plain := NewPlainSecretProviderFromConfig(GenericConfig{Base64: true, Base64URLEncoded: true, Base64Raw: true})
	secret, err = plain.GetSecret(raw)
	assert.NilError(t, err)
	assert.DeepEqual(t, secret, []byte{0xfb, 0xff})

	_, err = plain.GetSecret("!!!")
	assert.ErrorContains(t, err, "base64 decoding")
}
