package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sanLimbu/tasks-api/internal"
)

// User represents the repository used for interacting with User records.
type User struct {
	db *gorm.DB
}

// NewUser instantiates the User repository.
func NewUser(db *gorm.DB) *User {
	return &User{
		db: db,
	}
}

// Create inserts a new active user record.
func (u *User) Create(ctx context.Context, params internal.CreateUserParams) (internal.User, error) {
	defer newOTELSpan(ctx, "User.Create").End()

	db := u.db.WithContext(ctx)

	var count int64
	if err := db.Model(&userModel{}).Where("username = ?", params.Username).Count(&count).Error; err != nil {
		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "count users")
	}

	if count > 0 {
		return internal.User{}, internal.NewErrorf(internal.ErrorCodeInvalidArgument, "username already exists")
	}

	m := userModel{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := db.Create(&m).Error; err != nil {
		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "insert user")
	}

	return convertUser(m), nil
}

// Find returns the user with the id.
func (u *User) Find(ctx context.Context, id int64) (internal.User, error) {
	defer newOTELSpan(ctx, "User.Find").End()

	return u.take(ctx, "id = ?", id)
}

// FindByUsername returns the user with the username.
func (u *User) FindByUsername(ctx context.Context, username string) (internal.User, error) {
	defer newOTELSpan(ctx, "User.FindByUsername").End()

	return u.take(ctx, "username = ?", username)
}

func (u *User) take(ctx context.Context, query string, arg interface{}) (internal.User, error) {
	var m userModel

	if err := u.db.WithContext(ctx).Where(query, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "user not found")
		}

		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "select user")
	}

	return convertUser(m), nil
}
