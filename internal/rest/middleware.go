package rest

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/tasks-api/internal"
)

//go:generate counterfeiter -o resttesting/token_validator.gen.go . TokenValidator

// TokenValidator defines the verification of access tokens.
type TokenValidator interface {
	ValidateAccessToken(token string) (int64, error)
}

type ctxKey int

const userIDKey ctxKey = iota

var errNotAuthenticated = internal.NewErrorf(internal.ErrorCodeUnauthenticated, "not authenticated")

// Authenticator rejects requests without a valid "Authorization: Bearer" access token, the user it was
// issued to is stored in the request context.
func Authenticator(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				renderErrorResponse(w, r, "authentication credentials were not provided", errNotAuthenticated)
				return
			}

			userID, err := validator.ValidateAccessToken(strings.TrimSpace(token))
			if err != nil {
				renderErrorResponse(w, r, "given token not valid for any token type", err)
				return
			}

			trace.SpanFromContext(r.Context()).SetAttributes(attribute.Int64("user.id", userID))

			next.ServeHTTP(w, r.WithContext(NewContextWithUserID(r.Context(), userID)))
		})
	}
}

// NewContextWithUserID returns a copy of ctx carrying the authenticated user.
func NewContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)

	return userID, ok
}
