package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/postgresql/db"
)

// User represents the repository used for interacting with User records.
type User struct {
	q *db.Queries
}

// NewUser instantiates the User repository.
func NewUser(d db.DBTX) *User {
	return &User{
		q: db.New(d),
	}
}

// Create inserts a new user record.
func (u *User) Create(ctx context.Context, params internal.CreateUserParams) (internal.User, error) {
	defer newOTELSpan(ctx, "User.Create").End()

	res, err := u.q.InsertUser(ctx, db.InsertUserParams{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "username already exists")
		}

		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "insert user")
	}

	return convertUser(res), nil
}

// Find returns the user with the id.
func (u *User) Find(ctx context.Context, id int64) (internal.User, error) {
	defer newOTELSpan(ctx, "User.Find").End()

	res, err := u.q.SelectUser(ctx, id)
	if err != nil {
		return internal.User{}, userError(err)
	}

	return convertUser(res), nil
}

// FindByUsername returns the user with the username.
func (u *User) FindByUsername(ctx context.Context, username string) (internal.User, error) {
	defer newOTELSpan(ctx, "User.FindByUsername").End()

	res, err := u.q.SelectUserByUsername(ctx, username)
	if err != nil {
		return internal.User{}, userError(err)
	}

	return convertUser(res), nil
}

func userError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return internal.WrapErrorf(err, internal.ErrorCodeNotFound, "user not found")
	}

	return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "select user")
}
