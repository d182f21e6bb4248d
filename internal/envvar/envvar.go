// Package envvar reads configuration values from environment variables, optionally resolving secrets
// stored in an external provider.
package envvar

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sanLimbu/tasks-api/internal"
)

//go:generate counterfeiter -o envvartesting/provider.gen.go . Provider

// Provider resolves secure values, vault.Provider implements it.
type Provider interface {
	Get(key string) (string, error)
}

// Configuration reads values from the environment, falling back to Provider for secure keys.
type Configuration struct {
	provider Provider
}

// Load reads the env filename and loads it into ENV for this process. Empty filename is a no-op.
func Load(filename string) error {
	if filename == "" {
		return nil
	}

	if err := godotenv.Load(filename); err != nil {
		return internal.NewErrorf(internal.ErrorCodeUnknown, "loading env var file")
	}

	return nil
}

// New returns a Configuration resolving secure keys with provider.
func New(provider Provider) *Configuration {
	return &Configuration{
		provider: provider,
	}
}

// Get returns the value from environment variable `<key>`. When an environment variable `<key>_SECURE` exists
// the provider is used for getting the value.
func (c *Configuration) Get(key string) (string, error) {
	res := os.Getenv(key)
	valSecret := os.Getenv(fmt.Sprintf("%s_SECURE", key))

	if valSecret != "" {
		valSecretRes, err := c.provider.Get(valSecret)
		if err != nil {
			return "", internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "provider.Get")
		}

		res = valSecretRes
	}

	return res, nil
}
