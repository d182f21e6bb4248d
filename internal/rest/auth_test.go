package rest_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/rest"
	"github.com/sanLimbu/tasks-api/internal/rest/resttesting"
	"github.com/sanLimbu/tasks-api/internal/service"
)

func newAuthRouter(svc rest.AuthService) *chi.Mux {
	r := chi.NewRouter()
	rest.NewAuthHandler(svc).Register(r)

	return r
}

func post(router http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	return res
}

func TestAuth_Token(t *testing.T) {
	t.Parallel()

	t.Run("200", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeAuthService{}
		svc.LoginReturns(service.Tokens{Access: "a", Refresh: "r"}, nil)

		res := post(newAuthRouter(svc), "/api/token", `{"username": "alice", "password": "secret"}`)
		require.Equal(t, http.StatusOK, res.Code)
		require.JSONEq(t, `{"access": "a", "refresh": "r"}`, res.Body.String())

		_, username, password := svc.LoginArgsForCall(0)
		require.Equal(t, "alice", username)
		require.Equal(t, "secret", password)
	})

	t.Run("401", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeAuthService{}
		svc.LoginReturns(service.Tokens{}, service.ErrNoActiveAccount)

		res := post(newAuthRouter(svc), "/api/token", `{"username": "alice", "password": "wrong"}`)
		require.Equal(t, http.StatusUnauthorized, res.Code)
		require.JSONEq(t, `{"error": "no active account found with the given credentials"}`, res.Body.String())
		require.NotEmpty(t, res.Header().Get("WWW-Authenticate"))
	})

	t.Run("400", func(t *testing.T) {
		t.Parallel()

		res := post(newAuthRouter(&resttesting.FakeAuthService{}), "/api/token", `not json`)
		require.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestAuth_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("200", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeAuthService{}
		svc.RefreshReturns("new-access", nil)

		res := post(newAuthRouter(svc), "/api/token/refresh", `{"refresh": "r"}`)
		require.Equal(t, http.StatusOK, res.Code)
		require.JSONEq(t, `{"access": "new-access"}`, res.Body.String())
	})

	t.Run("401", func(t *testing.T) {
		t.Parallel()

		svc := &resttesting.FakeAuthService{}
		svc.RefreshReturns("", internal.WrapErrorf(errors.New("token is expired"), internal.ErrorCodeUnauthenticated, "jwt.Parse"))

		res := post(newAuthRouter(svc), "/api/token/refresh", `{"refresh": "r"}`)
		require.Equal(t, http.StatusUnauthorized, res.Code)
	})
}

func TestAuthenticator(t *testing.T) {
	t.Parallel()

	validator := &resttesting.FakeTokenValidator{}
	validator.ValidateAccessTokenCalls(func(token string) (int64, error) {
		if token == "good" {
			return 42, nil
		}

		return 0, internal.NewErrorf(internal.ErrorCodeUnauthenticated, "invalid token")
	})

	handler := rest.Authenticator(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := rest.UserIDFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, int64(42), userID)

		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic Zm9vOmJhcg==", http.StatusUnauthorized},
		{"invalid", "Bearer bad", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusTeapot},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/tasks/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)

			require.Equal(t, tt.status, res.Code)
		})
	}
}
