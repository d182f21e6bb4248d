package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/service"
	"github.com/sanLimbu/tasks-api/internal/service/servicetesting"
)

type fakeLock struct {
	ok       bool
	err      error
	keys     []string
	released int
}

func (f *fakeLock) Acquire(_ context.Context, key string) (func(context.Context) error, bool, error) {
	f.keys = append(f.keys, key)

	if f.err != nil || !f.ok {
		return nil, f.ok, f.err
	}

	return func(context.Context) error {
		f.released++
		return nil
	}, true, nil
}

var tick = time.Date(2030, 1, 1, 10, 0, 42, 0, time.UTC)

func newJob(t *testing.T, lock Locker, repoErr error) (*job, *servicetesting.FakeMailer) {
	t.Helper()

	repo := &servicetesting.FakeOverdueRepository{}
	repo.OverdueReturns([]internal.OverdueTask{
		{
			Task:  internal.Task{ID: 1, UserID: 2, Title: "report", Deadline: time.Now().Add(-time.Hour)},
			Email: "owner@example.com",
		},
	}, repoErr)

	mailer := &servicetesting.FakeMailer{}

	notifier, err := service.NewNotifier(repo, mailer, zap.NewNop())
	require.NoError(t, err)

	return &job{notifier: notifier, lock: lock, logger: zap.NewNop(), now: func() time.Time { return tick }}, mailer
}

func TestJob_Run(t *testing.T) {
	t.Parallel()

	t.Run("without lock", func(t *testing.T) {
		t.Parallel()

		j, mailer := newJob(t, nil, nil)

		require.NoError(t, j.run(context.Background()))
		require.Equal(t, 1, mailer.SendCallCount())
	})

	t.Run("lock acquired", func(t *testing.T) {
		t.Parallel()

		lock := &fakeLock{ok: true}
		j, mailer := newJob(t, lock, nil)

		require.NoError(t, j.run(context.Background()))
		require.Equal(t, 1, mailer.SendCallCount())
		require.Equal(t, []string{"notifier:lock:203001011000"}, lock.keys)
		require.Zero(t, lock.released, "held until it expires")
	})

	t.Run("run failure releases lock", func(t *testing.T) {
		t.Parallel()

		lock := &fakeLock{ok: true}
		j, mailer := newJob(t, lock, errors.New("database unavailable"))

		require.Error(t, j.run(context.Background()))
		require.Zero(t, mailer.SendCallCount())
		require.Equal(t, 1, lock.released)
	})

	t.Run("lock held elsewhere", func(t *testing.T) {
		t.Parallel()

		lock := &fakeLock{ok: false}
		j, mailer := newJob(t, lock, nil)

		require.NoError(t, j.run(context.Background()))
		require.Zero(t, mailer.SendCallCount())
		require.Zero(t, lock.released)
	})

	t.Run("lock error", func(t *testing.T) {
		t.Parallel()

		lock := &fakeLock{err: errors.New("connection refused")}
		j, mailer := newJob(t, lock, nil)

		require.Error(t, j.run(context.Background()))
		require.Zero(t, mailer.SendCallCount())
	})
}

func TestTickKey(t *testing.T) {
	t.Parallel()

	later := time.Date(2030, 1, 1, 10, 0, 59, 0, time.UTC)
	next := time.Date(2030, 1, 1, 10, 1, 0, 0, time.UTC)

	require.Equal(t, tickKey(tick), tickKey(later))
	require.NotEqual(t, tickKey(tick), tickKey(next))
	require.Equal(t, "notifier:lock:203001011000", tickKey(tick.In(time.FixedZone("CET", 3600))))
}
