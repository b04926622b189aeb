package cmd

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/michaelrosejr/pytellum/internal/token"
	"github.com/michaelrosejr/pytellum/secrets"
)

// Options are read from flags, then environment variables, then the config
// file. Environment variable names are the flag names in upper case with
// underscores, e.g. API_UID.
type Options struct {
	AuthURL            string        `mapstructure:"auth-url" validate:"required,url"`
	BaseURL            string        `mapstructure:"base-url" validate:"required,url"`
	APIUID             string        `mapstructure:"api-uid" validate:"required"`
	PrivateKeyFile     string        `mapstructure:"private-key-file" validate:"required"`
	PrivateKeyPassword string        `mapstructure:"private-key-password"`
	TokenCache         string        `mapstructure:"token-cache" validate:"required"`
	PersistToken       bool          `mapstructure:"persist-token"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Retries            int           `mapstructure:"retries" validate:"gte=0,lte=10"`
	Timezone           string        `mapstructure:"timezone"`
	LogLevel           string        `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	LogFile            string        `mapstructure:"log-file"`
	MetricsTextfile    string        `mapstructure:"metrics-textfile"`
	ConfigFile         string        `mapstructure:"config-file"`

	// Secrets configures the remote private key sources. It can only be set
	// in the config file.
	Secrets SecretsOptions `mapstructure:"secrets"`
}

type SecretsOptions struct {
	Vault      secrets.VaultConfig      `mapstructure:"vault"`
	AWS        secrets.AWSConfig        `mapstructure:"aws"`
	Kubernetes secrets.KubernetesConfig `mapstructure:"kubernetes"`
}

const (
	defaultAuthURL = "https://salespro.hpe.com/oauth2/token.json"
	defaultBaseURL = "https://salespro.hpe.com"
)

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String("auth-url", defaultAuthURL, "Authorization endpoint for the JWT bearer grant")
	flags.String("base-url", defaultBaseURL, "Base URL of the data API")
	flags.String("api-uid", "", "Service account identifier (required)")
	flags.String("private-key-file", "private_key.pem", "Private key reference: a path, or env:NAME, plain:PEM, file:PATH, vault:PATH, awssm:NAME, kubernetes:SECRET/KEY")
	flags.String("private-key-password", "", "Password of an encrypted PKCS#8 private key")
	flags.String("token-cache", token.DefaultCachePath, "File used to cache the access token")
	flags.Bool("persist-token", true, "Write newly requested access tokens to the token cache")
	flags.Duration("timeout", 30*time.Second, "Timeout for each API call, retries included")
	flags.Int("retries", 3, "Number of retries for failed API calls")
	flags.String("timezone", "US/Pacific", "Timezone used to display dates")
	flags.String("log-level", "warn", "Show logs when running the command [error, warn, info, debug]")
	flags.String("log-file", "", "Write logs to this file instead of stderr")
	flags.String("metrics-textfile", "", "Write prometheus metrics to this file when the command finishes")
	flags.String("config-file", "", "YAML config file (default $HOME/.intellim/config.yaml)")
}

// ParseOptions resolves the options for cmd. Only a config file named with
// --config-file must exist.
func ParseOptions(cmd *cobra.Command, fs afero.Fs, options *Options) error {
	v := viper.New()
	v.SetFs(fs)

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configfile := v.GetString("config-file")
	if configfile != "" {
		v.SetConfigFile(configfile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.intellim")
	}

	if err := v.ReadInConfig(); err != nil {
		var errConfigFileNotFound viper.ConfigFileNotFoundError
		if configfile != "" || !errors.As(err, &errConfigFileNotFound) {
			return fmt.Errorf("%w: config file: %v", ErrConfiguration, err)
		}
	}

	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))

	if err := v.Unmarshal(options, hooks); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
	})
	return v
}

// Validate returns a user facing error naming every invalid setting.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	problems := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		name := fe.Field()
		env := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))

		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required (--%s or %s)", name, name, env))
		case "url":
			problems = append(problems, fmt.Sprintf("%s must be a URL, got %q", name, fe.Value()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid: must be %s %s, got %v", name, fe.Tag(), fe.Param(), fe.Value()))
		}
	}

	return Error{
		Cause:         "invalid configuration",
		OriginalError: fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(problems, "; ")),
		Suggestion:    "Set the missing values with flags, environment variables or the config file. Run 'intellim --help' for the list.",
	}
}

// location resolves the display timezone, defaulting to UTC when unset.
func (o Options) location() (*time.Location, error) {
	if o.Timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return nil, Error{
			Cause:         "invalid configuration",
			OriginalError: fmt.Errorf("%w: timezone %q: %v", ErrConfiguration, o.Timezone, err),
			Suggestion:    "Use an IANA timezone name such as US/Pacific or Europe/London.",
		}
	}

	return loc, nil
}
