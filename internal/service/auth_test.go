package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/service"
	"github.com/sanLimbu/tasks-api/internal/service/servicetesting"
)

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	notFound := internal.NewErrorf(internal.ErrorCodeNotFound, "user not found")

	tests := []struct {
		name     string
		setup    func(*servicetesting.FakeUserRepository, *servicetesting.FakePasswordHasher)
		username string
		password string
		code     internal.ErrorCode
		withErr  bool
	}{
		{
			"OK",
			func(u *servicetesting.FakeUserRepository, h *servicetesting.FakePasswordHasher) {
				u.FindByUsernameReturns(internal.User{ID: 4, IsActive: true, PasswordHash: "hash"}, nil)
				h.VerifyReturns(true)
			},
			"alice", "secret", 0, false,
		},
		{
			"ERR: missing fields",
			func(*servicetesting.FakeUserRepository, *servicetesting.FakePasswordHasher) {},
			"", "", internal.ErrorCodeInvalidArgument, true,
		},
		{
			"ERR: unknown user",
			func(u *servicetesting.FakeUserRepository, _ *servicetesting.FakePasswordHasher) {
				u.FindByUsernameReturns(internal.User{}, notFound)
			},
			"mallory", "secret", internal.ErrorCodeUnauthenticated, true,
		},
		{
			"ERR: wrong password",
			func(u *servicetesting.FakeUserRepository, h *servicetesting.FakePasswordHasher) {
				u.FindByUsernameReturns(internal.User{ID: 4, IsActive: true}, nil)
				h.VerifyReturns(false)
			},
			"alice", "wrong", internal.ErrorCodeUnauthenticated, true,
		},
		{
			"ERR: inactive",
			func(u *servicetesting.FakeUserRepository, h *servicetesting.FakePasswordHasher) {
				u.FindByUsernameReturns(internal.User{ID: 4, IsActive: false}, nil)
				h.VerifyReturns(true)
			},
			"alice", "secret", internal.ErrorCodeUnauthenticated, true,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			users := &servicetesting.FakeUserRepository{}
			hasher := &servicetesting.FakePasswordHasher{}
			tokens := &servicetesting.FakeTokenManager{}

			tokens.AccessTokenReturns("access", nil)
			tokens.RefreshTokenReturns("refresh", nil)

			tt.setup(users, hasher)

			res, err := service.NewAuth(users, hasher, tokens).Login(context.Background(), tt.username, tt.password)
			if tt.withErr {
				requireCode(t, err, tt.code)
				require.Zero(t, tokens.AccessTokenCallCount())

				return
			}

			require.NoError(t, err)
			require.Equal(t, service.Tokens{Access: "access", Refresh: "refresh"}, res)
			require.Equal(t, int64(4), tokens.AccessTokenArgsForCall(0))
		})
	}
}

func TestAuth_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		users := &servicetesting.FakeUserRepository{}
		users.FindReturns(internal.User{ID: 4, IsActive: true}, nil)

		tokens := &servicetesting.FakeTokenManager{}
		tokens.ValidateRefreshTokenReturns(4, nil)
		tokens.AccessTokenReturns("access", nil)

		access, err := service.NewAuth(users, &servicetesting.FakePasswordHasher{}, tokens).Refresh(context.Background(), "refresh")
		require.NoError(t, err)
		require.Equal(t, "access", access)
		require.Zero(t, tokens.RefreshTokenCallCount(), "refresh tokens are not rotated")
	})

	t.Run("ERR: invalid token", func(t *testing.T) {
		t.Parallel()

		tokens := &servicetesting.FakeTokenManager{}
		tokens.ValidateRefreshTokenReturns(0, internal.NewErrorf(internal.ErrorCodeUnauthenticated, "invalid"))

		_, err := service.NewAuth(&servicetesting.FakeUserRepository{}, &servicetesting.FakePasswordHasher{}, tokens).Refresh(context.Background(), "bad")
		requireCode(t, err, internal.ErrorCodeUnauthenticated)
	})

	t.Run("ERR: inactive user", func(t *testing.T) {
		t.Parallel()

		users := &servicetesting.FakeUserRepository{}
		users.FindReturns(internal.User{ID: 4, IsActive: false}, nil)

		tokens := &servicetesting.FakeTokenManager{}
		tokens.ValidateRefreshTokenReturns(4, nil)

		_, err := service.NewAuth(users, &servicetesting.FakePasswordHasher{}, tokens).Refresh(context.Background(), "refresh")
		requireCode(t, err, internal.ErrorCodeUnauthenticated)
		require.Zero(t, tokens.AccessTokenCallCount())
	})

	t.Run("ERR: deleted user", func(t *testing.T) {
		t.Parallel()

		users := &servicetesting.FakeUserRepository{}
		users.FindReturns(internal.User{}, internal.NewErrorf(internal.ErrorCodeNotFound, "user not found"))

		tokens := &servicetesting.FakeTokenManager{}
		tokens.ValidateRefreshTokenReturns(4, nil)

		_, err := service.NewAuth(users, &servicetesting.FakePasswordHasher{}, tokens).Refresh(context.Background(), "refresh")
		requireCode(t, err, internal.ErrorCodeUnauthenticated)
	})

	t.Run("ERR: missing", func(t *testing.T) {
		t.Parallel()

		_, err := service.NewAuth(&servicetesting.FakeUserRepository{}, &servicetesting.FakePasswordHasher{}, &servicetesting.FakeTokenManager{}).
			Refresh(context.Background(), "")
		requireCode(t, err, internal.ErrorCodeInvalidArgument)
	})
}

func TestAuth_CreateUser(t *testing.T) {
	t.Parallel()

	users := &servicetesting.FakeUserRepository{}
	users.CreateReturns(internal.User{ID: 1, Username: "alice", IsActive: true}, nil)

	hasher := &servicetesting.FakePasswordHasher{}
	hasher.HashReturns("hashed", nil)

	auth := service.NewAuth(users, hasher, &servicetesting.FakeTokenManager{})

	user, err := auth.CreateUser(context.Background(), "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)

	_, params := users.CreateArgsForCall(0)
	require.Equal(t, internal.CreateUserParams{Username: "alice", Email: "alice@example.com", PasswordHash: "hashed"}, params)

	_, err = auth.CreateUser(context.Background(), "bob", "not-an-email", "short")
	requireCode(t, err, internal.ErrorCodeInvalidArgument)
	require.Equal(t, 1, users.CreateCallCount())
}
