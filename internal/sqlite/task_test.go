package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sanLimbu/tasks-api/internal"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// newTask returns a repository whose clock moves forward one minute on every call.
func newTask(db *gorm.DB) *Task {
	repo := NewTask(db)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}

	return repo
}

func newUser(t *testing.T, repo *User, username string) internal.User {
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

func ids(tasks []internal.Task) []int64 {
	res := make([]int64, len(tasks))
	for i, task := range tasks {
		res[i] = task.ID
	}

	return res
}

func TestTask_Scoping(t *testing.T) {
	t.Parallel()

	db := newDB(t)
	ctx := context.Background()

	users := NewUser(db)
	tasks := newTask(db)

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
	require.Equal(t, time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC), created.CreatedAt)

	found, err := tasks.Find(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, found)

	_, err = tasks.Find(ctx, bob.ID, created.ID)
	requireCode(t, err, internal.ErrorCodeNotFound)

	title := "Hijacked"
	_, err = tasks.Update(ctx, bob.ID, created.ID, internal.UpdateParams{Title: &title})
	requireCode(t, err, internal.ErrorCodeNotFound)

	err = tasks.Delete(ctx, bob.ID, created.ID)
	requireCode(t, err, internal.ErrorCodeNotFound)

	list, err := tasks.Search(ctx, bob.ID, internal.SearchParams{})
	require.NoError(t, err)
	require.Empty(t, list)

	found, err = tasks.Find(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Pay rent", found.Title)

	require.NoError(t, tasks.Delete(ctx, alice.ID, created.ID))

	err = tasks.Delete(ctx, alice.ID, created.ID)
	requireCode(t, err, internal.ErrorCodeNotFound)
}

func TestTask_Update(t *testing.T) {
	t.Parallel()

	db := newDB(t)
	ctx := context.Background()

	alice := newUser(t, NewUser(db), "alice")
	tasks := newTask(db)

	deadline := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	created, err := tasks.Create(ctx, alice.ID, internal.CreateParams{
		Title:       "Write report",
		Description: "quarterly",
		Priority:    internal.PriorityLow,
		Deadline:    deadline,
	})
	require.NoError(t, err)

	completed := true

	updated, err := tasks.Update(ctx, alice.ID, created.ID, internal.UpdateParams{Completed: &completed})
	require.NoError(t, err)

	expected := created
	expected.Completed = true

	require.Equal(t, expected, updated)

	title := "Write annual report"
	priority := internal.PriorityHigh
	newDeadline := deadline.Add(24 * time.Hour)

	updated, err = tasks.Update(ctx, alice.ID, created.ID, internal.UpdateParams{
		Title:    &title,
		Priority: &priority,
		Deadline: &newDeadline,
	})
	require.NoError(t, err)

	expected.Title = title
	expected.Priority = priority
	expected.Deadline = newDeadline

	require.Equal(t, expected, updated)

	unchanged, err := tasks.Update(ctx, alice.ID, created.ID, internal.UpdateParams{})
	require.NoError(t, err)
	require.Equal(t, expected, unchanged)
}

func TestTask_Search(t *testing.T) {
	t.Parallel()

	db := newDB(t)
	ctx := context.Background()

	users := NewUser(db)
	tasks := newTask(db)

	alice := newUser(t, users, "alice")
	bob := newUser(t, users, "bob")

	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

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

	groceries := create(alice.ID, "Buy Groceries", "milk and eggs", internal.PriorityMedium, base.Add(48*time.Hour))
	report := create(alice.ID, "Report", "send the GROCERY budget", internal.PriorityHigh, base.Add(24*time.Hour))
	gym := create(alice.ID, "Gym", "100% effort", internal.PriorityLow, base.Add(72*time.Hour))
	create(bob.ID, "Buy groceries", "bob's list", internal.PriorityHigh, base)

	tests := []struct {
		name   string
		params internal.SearchParams
		output []int64
	}{
		{
			"default ordering, newest first",
			internal.SearchParams{},
			[]int64{gym.ID, report.ID, groceries.ID},
		},
		{
			"deadline ascending",
			internal.SearchParams{Ordering: internal.ParseOrdering("deadline")},
			[]int64{report.ID, groceries.ID, gym.ID},
		},
		{
			"deadline descending",
			internal.SearchParams{Ordering: internal.ParseOrdering("-deadline")},
			[]int64{gym.ID, groceries.ID, report.ID},
		},
		{
			"priority ascending, low first",
			internal.SearchParams{Ordering: internal.ParseOrdering("priority")},
			[]int64{gym.ID, groceries.ID, report.ID},
		},
		{
			"priority descending",
			internal.SearchParams{Ordering: internal.ParseOrdering("-priority")},
			[]int64{report.ID, groceries.ID, gym.ID},
		},
		{
			"search title and description, case-insensitive",
			internal.SearchParams{Search: "grocer"},
			[]int64{report.ID, groceries.ID},
		},
		{
			"search wildcard is literal",
			internal.SearchParams{Search: "%"},
			[]int64{gym.ID},
		},
		{
			"search underscore is literal",
			internal.SearchParams{Search: "_"},
			[]int64{},
		},
		{
			"search with ordering",
			internal.SearchParams{Search: "GROCER", Ordering: internal.ParseOrdering("deadline")},
			[]int64{report.ID, groceries.ID},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			res, err := tasks.Search(ctx, alice.ID, tt.params)
			require.NoError(t, err)
			require.Equal(t, tt.output, ids(res))
		})
	}
}

func TestTask_Overdue(t *testing.T) {
	t.Parallel()

	db := newDB(t)
	ctx := context.Background()

	users := NewUser(db)
	tasks := newTask(db)

	alice := newUser(t, users, "alice")
	bob := newUser(t, users, "bob")

	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	past, err := tasks.Create(ctx, alice.ID, internal.CreateParams{
		Title:    "Late",
		Priority: internal.PriorityMedium,
		Deadline: now.Add(-time.Hour),
	})
	require.NoError(t, err)

	exact, err := tasks.Create(ctx, bob.ID, internal.CreateParams{
		Title:    "Right now",
		Priority: internal.PriorityMedium,
		Deadline: now,
	})
	require.NoError(t, err)

	_, err = tasks.Create(ctx, alice.ID, internal.CreateParams{
		Title:     "Done already",
		Priority:  internal.PriorityMedium,
		Deadline:  now.Add(-2 * time.Hour),
		Completed: true,
	})
	require.NoError(t, err)

	_, err = tasks.Create(ctx, bob.ID, internal.CreateParams{
		Title:    "Future",
		Priority: internal.PriorityMedium,
		Deadline: now.Add(time.Hour),
	})
	require.NoError(t, err)

	res, err := tasks.Overdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, res, 2)

	require.Equal(t, past.ID, res[0].ID)
	require.Equal(t, "alice", res[0].Username)
	require.Equal(t, "alice@example.com", res[0].Email)

	require.Equal(t, exact.ID, res[1].ID)
	require.Equal(t, "bob@example.com", res[1].Email)

	empty, err := tasks.Overdue(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Empty(t, empty)
}
