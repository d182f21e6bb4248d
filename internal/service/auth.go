package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.opentelemetry.io/otel"

	"github.com/sanLimbu/tasks-api/internal"
)

//go:generate counterfeiter -o servicetesting/user_repository.gen.go . UserRepository

// UserRepository defines the datastore handling persisting User records.
type UserRepository interface {
	Create(ctx context.Context, params internal.CreateUserParams) (internal.User, error)
	Find(ctx context.Context, id int64) (internal.User, error)
	FindByUsername(ctx context.Context, username string) (internal.User, error)
}

//go:generate counterfeiter -o servicetesting/password_hasher.gen.go . PasswordHasher

// PasswordHasher defines the one-way hashing of passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

//go:generate counterfeiter -o servicetesting/token_manager.gen.go . TokenManager

// TokenManager defines the issuing and validation of bearer tokens.
type TokenManager interface {
	AccessToken(userID int64) (string, error)
	RefreshToken(userID int64) (string, error)
	ValidateRefreshToken(token string) (int64, error)
}

// Tokens is the pair returned after a successful login.
type Tokens struct {
	Access  string
	Refresh string
}

// ErrNoActiveAccount is returned for unknown users, inactive users and wrong passwords alike.
var ErrNoActiveAccount = internal.NewErrorf(internal.ErrorCodeUnauthenticated, "no active account found with the given credentials")

// Auth defines the application service in charge of authenticating Users.
type Auth struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenManager
}

// NewAuth instantiates the Auth service.
func NewAuth(users UserRepository, hasher PasswordHasher, tokens TokenManager) *Auth {
	return &Auth{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login exchanges credentials for an access and refresh token pair.
func (a *Auth) Login(ctx context.Context, username, password string) (Tokens, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Auth.Login")
	defer span.End()

	if err := (validation.Errors{
		"username": validation.Validate(username, validation.Required),
		"password": validation.Validate(password, validation.Required),
	}).Filter(); err != nil {
		return Tokens{}, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "validation")
	}

	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return Tokens{}, ErrNoActiveAccount
		}

		return Tokens{}, fmt.Errorf("users find: %w", err)
	}

	if !user.IsActive || !a.hasher.Verify(user.PasswordHash, password) {
		return Tokens{}, ErrNoActiveAccount
	}

	access, err := a.tokens.AccessToken(user.ID)
	if err != nil {
		return Tokens{}, fmt.Errorf("tokens access: %w", err)
	}

	refresh, err := a.tokens.RefreshToken(user.ID)
	if err != nil {
		return Tokens{}, fmt.Errorf("tokens refresh: %w", err)
	}

	return Tokens{
		Access:  access,
		Refresh: refresh,
	}, nil
}

// Refresh issues a new access token, the refresh token itself is not rotated.
func (a *Auth) Refresh(ctx context.Context, refresh string) (string, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Auth.Refresh")
	defer span.End()

	if err := validation.Validate(refresh, validation.Required); err != nil {
		return "", internal.WrapErrorf(validation.Errors{"refresh": err}, internal.ErrorCodeInvalidArgument, "validation")
	}

	userID, err := a.tokens.ValidateRefreshToken(refresh)
	if err != nil {
		return "", fmt.Errorf("tokens validate: %w", err)
	}

	user, err := a.users.Find(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return "", internal.NewErrorf(internal.ErrorCodeUnauthenticated, "user not found")
		}

		return "", fmt.Errorf("users find: %w", err)
	}

	if !user.IsActive {
		return "", internal.NewErrorf(internal.ErrorCodeUnauthenticated, "user is inactive")
	}

	access, err := a.tokens.AccessToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("tokens access: %w", err)
	}

	return access, nil
}

// CreateUser provisions a new active User.
func (a *Auth) CreateUser(ctx context.Context, username, email, password string) (internal.User, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Auth.CreateUser")
	defer span.End()

	if err := (validation.Errors{
		"username": validation.Validate(username, validation.Required, validation.RuneLength(1, 150)),
		"email":    validation.Validate(email, validation.Required, is.EmailFormat),
		"password": validation.Validate(password, validation.Required, validation.Length(8, 72)),
	}).Filter(); err != nil {
		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "validation")
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return internal.User{}, fmt.Errorf("hasher hash: %w", err)
	}

	user, err := a.users.Create(ctx, internal.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return internal.User{}, fmt.Errorf("users create: %w", err)
	}

	return user, nil
}

func isNotFound(err error) bool {
	var ierr *internal.Error

	return errors.As(err, &ierr) && ierr.Code() == internal.ErrorCodeNotFound
}
