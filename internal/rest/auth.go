package rest

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/service"
)

//go:generate counterfeiter -o resttesting/auth_service.gen.go . AuthService

// AuthService defines the application service exchanging credentials for tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (service.Tokens, error)
	Refresh(ctx context.Context, refresh string) (string, error)
}

// AuthHandler serves the token endpoints.
type AuthHandler struct {
	svc AuthService
}

// NewAuthHandler returns an AuthHandler backed by svc.
func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// Register connects the handlers to the router.
func (a *AuthHandler) Register(r chi.Router) {
	r.Post("/api/token", a.token)
	r.Post("/api/token/refresh", a.refresh)
}

// TokenRequest defines the request used for obtaining a token pair.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse defines the response returned after a successful login.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest defines the request used for obtaining a new access token.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse defines the response returned with the new access token.
type RefreshResponse struct {
	Access string `json:"access"`
}

func (a *AuthHandler) token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		renderErrorResponse(w, r, "invalid request", err)
		return
	}

	tokens, err := a.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		renderErrorResponse(w, r, errorMessage(err, "login failed"), err)
		return
	}

	renderResponse(w, r, TokenResponse{Access: tokens.Access, Refresh: tokens.Refresh}, http.StatusOK)
}

func (a *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		renderErrorResponse(w, r, "invalid request", err)
		return
	}

	access, err := a.svc.Refresh(r.Context(), req.Refresh)
	if err != nil {
		renderErrorResponse(w, r, errorMessage(err, "token is invalid or expired"), err)
		return
	}

	renderResponse(w, r, RefreshResponse{Access: access}, http.StatusOK)
}

// errorMessage returns the message of the failed login, so clients can tell credentials apart from
// other failures.
func errorMessage(err error, def string) string {
	if errors.Is(err, service.ErrNoActiveAccount) {
		return err.Error()
	}

	var ierr *internal.Error
	if errors.As(err, &ierr) && ierr.Code() == internal.ErrorCodeInvalidArgument {
		return "invalid request"
	}

	return def
}

func decodeJSON(body io.Reader, v interface{}) error {
	if err := render.DecodeJSON(body, v); err != nil && !errors.Is(err, io.EOF) {
		return internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "json decoder")
	}

	return nil
}
