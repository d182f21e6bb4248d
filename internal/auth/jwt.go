// Package auth issues and verifies the bearer tokens used by the API.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sanLimbu/tasks-api/internal"
)

// Values of the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Config holds the signing key, the issuer and the token lifetimes.
type Config struct {
	SecretKey       string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Claims are the custom claims carried by every token.
type Claims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates HS256 tokens.
type TokenManager struct {
	config Config
	now    func() time.Time
}

// NewTokenManager returns a TokenManager signing with config.
func NewTokenManager(config Config) *TokenManager {
	return &TokenManager{
		config: config,
		now:    time.Now,
	}
}

// AccessToken generates a new access token for the user.
func (m *TokenManager) AccessToken(userID int64) (string, error) {
	return m.generate(userID, TokenTypeAccess, m.config.AccessTokenTTL)
}

// RefreshToken generates a new refresh token for the user.
func (m *TokenManager) RefreshToken(userID int64) (string, error) {
	return m.generate(userID, TokenTypeRefresh, m.config.RefreshTokenTTL)
}

// ValidateAccessToken returns the user the access token was issued to.
func (m *TokenManager) ValidateAccessToken(token string) (int64, error) {
	return m.validate(token, TokenTypeAccess)
}

// ValidateRefreshToken returns the user the refresh token was issued to.
func (m *TokenManager) ValidateRefreshToken(token string) (int64, error) {
	return m.validate(token, TokenTypeRefresh)
}

func (m *TokenManager) generate(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()

	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.config.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	res, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.config.SecretKey))
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeUnknown, "token.SignedString")
	}

	return res, nil
}

func (m *TokenManager) validate(token, tokenType string) (int64, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}

	if m.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.config.Issuer))
	}

	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(m.config.SecretKey), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, internal.WrapErrorf(err, internal.ErrorCodeUnauthenticated, "token is expired")
		}

		return 0, internal.WrapErrorf(err, internal.ErrorCodeUnauthenticated, "token is invalid")
	}

	if !parsed.Valid || claims.TokenType != tokenType || claims.UserID == 0 {
		return 0, internal.NewErrorf(internal.ErrorCodeUnauthenticated, "token is invalid")
	}

	return claims.UserID, nil
}
