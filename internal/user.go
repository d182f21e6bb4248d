package internal

import (
	"time"
)

// User is the identity owning Tasks.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// CreateUserParams defines the arguments used for creating User records.
type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}
