package internal

import (
	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/config"
	"github.com/sanLimbu/tasks-api/internal/envvar"
)

// NewConfig loads the optional env file and reads the process configuration.
func NewConfig(env string) (config.Config, error) {
	if err := envvar.Load(env); err != nil {
		return config.Config{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "envvar.Load")
	}

	vault, err := NewVaultProvider()
	if err != nil {
		return config.Config{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "NewVaultProvider")
	}

	cfg, err := config.New(envvar.New(vault))
	if err != nil {
		return config.Config{}, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "config.New")
	}

	return cfg, nil
}
