package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/spf13/afero"
)

type FileConfig struct {
	GenericConfig
	Path string `yaml:"path" mapstructure:"path"`
}

// FileSecretProvider reads secrets from files. Names are joined to Path when
// it is set.
type FileSecretProvider struct {
	FileConfig
	fs afero.Fs
}

func NewFileSecretProvider(fs afero.Fs, cfg FileConfig) *FileSecretProvider {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &FileSecretProvider{
		FileConfig: cfg,
		fs:         fs,
	}
}

var _ Source = &FileSecretProvider{}

func (fp *FileSecretProvider) GetSecret(name string) (secret []byte, err error) {
	fullPath := name
	if len(fp.Path) > 0 {
		fullPath = path.Join(fp.Path, name)
	}

	b, err := afero.ReadFile(fp.fs, fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file %q: %w", fullPath, ErrNotFound)
		}

		return nil, fmt.Errorf("reading file %q: %w", fullPath, err)
	}

	result, err := fp.decode(b)
	if err != nil {
		return nil, fmt.Errorf("file %q: %w", fullPath, err)
	}

	return result, nil
}
