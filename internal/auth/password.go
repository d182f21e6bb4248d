package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/sanLimbu/tasks-api/internal"
)

// DefaultBcryptCost is the work factor used when NewPasswordHasher receives 0.
const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost, 0 selects DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}

	return &PasswordHasher{
		cost: cost,
	}
}

// Hash generates the bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	// bcrypt only considers the first 72 bytes.
	if len(password) > 72 {
		return "", internal.NewErrorf(internal.ErrorCodeInvalidArgument, "password must be at most 72 bytes")
	}

	res, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeUnknown, "bcrypt.GenerateFromPassword")
	}

	return string(res), nil
}

// Verify indicates whether password matches hash.
func (h *PasswordHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
