package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/postgresql"
)

// newDB connects to DATABASE_URL and applies the migrations in a throwaway schema.
func newDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	schema := fmt.Sprintf("test_%d", time.Now().UnixNano())

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)

	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	config, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)

	config.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, config)
	require.NoError(t, err)

	t.Cleanup(pool.Close)

	files, err := filepath.Glob(filepath.Join("..", "..", "db", "migrations", "*.sql"))
	require.NoError(t, err)

	sort.Strings(files)

	for _, file := range files {
		b, err := os.ReadFile(file)
		require.NoError(t, err)

		up, _, _ := strings.Cut(string(b), "---- create above / drop below ----")

		_, err = pool.Exec(ctx, up)
		require.NoError(t, err, file)
	}

	return pool
}

func newUser(t *testing.T, repo *postgresql.User, username string) internal.User {
	t.Helper()

	user, err := repo.Create(context.Background(), internal.CreateUserParams{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	return user
}

func requireCode(t *testing.T, err error, code internal.ErrorCode) {
	t.Helper()

	var ierr *internal.Error
	require.True(t, errors.As(err, &ierr), "expected internal.Error, got %v", err)
	require.Equal(t, code, ierr.Code())
}

func TestTask_Scoping(t *testing.T) {
	pool := newDB(t)
	ctx := context.Background()

	users := postgresql.NewUser(pool)
	tasks := postgresql.NewTask(pool)

	alice := newUser(t, users, "alice")
	bob := newUser(t, users, "bob")

	deadline := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	created, err := tasks.Create(ctx, alice.ID, internal.CreateParams{
		Title:       "Pay rent",
		Description: "before the 5th",
		Priority:    internal.PriorityHigh,
		Deadline:    deadline,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, alice.ID, created.UserID)
	require.False(t, created.CreatedAt.IsZero())

	found, err := tasks.Find(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, found)

	_, err = tasks.Find(ctx, bob.ID, created.ID)
	requireCode(t, err, internal.ErrorCodeNotFound)

	completed := true

	_, err = tasks.Update(ctx, bob.ID, created.ID, internal.UpdateParams{Completed: &completed})
	requireCode(t, err, internal.ErrorCodeNotFound)

	requireCode(t, tasks.Delete(ctx, bob.ID, created.ID), internal.ErrorCodeNotFound)

	updated, err := tasks.Update(ctx, alice.ID, created.ID, internal.UpdateParams{Completed: &completed})
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, created.Title, updated.Title)
	require.Equal(t, created.Deadline, updated.Deadline)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, tasks.Delete(ctx, alice.ID, created.ID))
	requireCode(t, tasks.Delete(ctx, alice.ID, created.ID), internal.ErrorCodeNotFound)
}

func TestTask_SearchAndOverdue(t *testing.T) {
	pool := newDB(t)
	ctx := context.Background()

	users := postgresql.NewUser(pool)
	tasks := postgresql.NewTask(pool)

	alice := newUser(t, users, "alice")
	bob := newUser(t, users, "bob")

	now := time.Now().UTC().Truncate(time.Second)

	create := func(userID int64, title, description string, priority internal.Priority, deadline time.Time) internal.Task {
		task, err := tasks.Create(ctx, userID, internal.CreateParams{
			Title:       title,
			Description: description,
			Priority:    priority,
			Deadline:    deadline,
		})
		require.NoError(t, err)

		return task
	}

	late := create(alice.ID, "Pay RENT", "", internal.PriorityLow, now.Add(-time.Hour))
	soon := create(alice.ID, "Groceries", "rent a car too", internal.PriorityHigh, now.Add(time.Hour))
	later := create(alice.ID, "Dentist", "", internal.PriorityMedium, now.Add(48*time.Hour))
	_ = create(bob.ID, "Bob rent", "", internal.PriorityHigh, now.Add(-time.Hour))

	res, err := tasks.Search(ctx, alice.ID, internal.SearchParams{Search: "rent", Ordering: internal.ParseOrdering("deadline")})
	require.NoError(t, err)
	require.Equal(t, []int64{late.ID, soon.ID}, ids(res))

	res, err = tasks.Search(ctx, alice.ID, internal.SearchParams{Ordering: internal.ParseOrdering("-deadline")})
	require.NoError(t, err)
	require.Equal(t, []int64{later.ID, soon.ID, late.ID}, ids(res))

	res, err = tasks.Search(ctx, alice.ID, internal.SearchParams{Ordering: internal.ParseOrdering("priority")})
	require.NoError(t, err)
	require.Equal(t, []int64{late.ID, later.ID, soon.ID}, ids(res))

	overdue, err := tasks.Overdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, overdue, 2)

	for _, o := range overdue {
		require.True(t, !o.Deadline.After(now))
		require.NotEmpty(t, o.Email)
	}
}

func ids(tasks []internal.Task) []int64 {
	res := make([]int64, len(tasks))
	for i, t := range tasks {
		res[i] = t.ID
	}

	return res
}
