package envvar_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/envvar"
	"github.com/sanLimbu/tasks-api/internal/envvar/envvartesting"
)

func TestConfiguration_Get(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		t.Setenv("TASKS_TEST_VALUE", "plain")

		provider := &envvartesting.FakeProvider{}

		val, err := envvar.New(provider).Get("TASKS_TEST_VALUE")
		require.NoError(t, err)
		require.Equal(t, "plain", val)
		require.Zero(t, provider.GetCallCount())
	})

	t.Run("secure", func(t *testing.T) {
		t.Setenv("TASKS_TEST_VALUE", "ignored")
		t.Setenv("TASKS_TEST_VALUE_SECURE", "secret/tasks:jwt")

		provider := &envvartesting.FakeProvider{}
		provider.GetReturns("from-vault", nil)

		val, err := envvar.New(provider).Get("TASKS_TEST_VALUE")
		require.NoError(t, err)
		require.Equal(t, "from-vault", val)
		require.Equal(t, "secret/tasks:jwt", provider.GetArgsForCall(0))
	})

	t.Run("secure error", func(t *testing.T) {
		t.Setenv("TASKS_TEST_VALUE_SECURE", "secret/tasks:jwt")

		provider := &envvartesting.FakeProvider{}
		provider.GetReturns("", errors.New("permission denied"))

		_, err := envvar.New(provider).Get("TASKS_TEST_VALUE")

		var ierr *internal.Error
		require.True(t, errors.As(err, &ierr))
		require.Equal(t, internal.ErrorCodeInvalidArgument, ierr.Code())
	})
}

func TestLoad(t *testing.T) {
	require.NoError(t, envvar.Load(""))

	filename := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(filename, []byte("TASKS_TEST_LOADED=yes\n"), 0o600))

	t.Cleanup(func() { _ = os.Unsetenv("TASKS_TEST_LOADED") })

	require.NoError(t, envvar.Load(filename))
	require.Equal(t, "yes", os.Getenv("TASKS_TEST_LOADED"))

	require.Error(t, envvar.Load(filepath.Join(t.TempDir(), "missing.env")))
}
