package service_test

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

func newNotifier(t *testing.T, repo service.OverdueRepository, mailer service.Mailer, now time.Time) *service.Notifier {
	t.Helper()

	notifier, err := service.NewNotifier(repo, mailer, zap.NewNop())
	require.NoError(t, err)

	return notifier.WithClock(func() time.Time { return now })
}

func TestNotifier_Run(t *testing.T) {
	t.Parallel()

	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := &servicetesting.FakeOverdueRepository{}
	repo.OverdueReturns([]internal.OverdueTask{
		{
			Task:  internal.Task{ID: 1, UserID: 10, Title: "Pay rent", Deadline: now.Add(-time.Hour)},
			Email: "alice@example.com",
		},
	}, nil)

	mailer := &servicetesting.FakeMailer{}

	notifier := newNotifier(t, repo, mailer, now)

	res, err := notifier.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, service.NotifyResult{Selected: 1, Sent: 1}, res)

	_, actualNow := repo.OverdueArgsForCall(0)
	require.Equal(t, now, actualNow)

	_, to, subject, body := mailer.SendArgsForCall(0)
	require.Equal(t, "alice@example.com", to)
	require.Equal(t, "Task Deadline Alert: Pay rent", subject)
	require.Equal(t, "The task 'Pay rent' is due!", body)

	// Nothing marks the task as notified, the next run sends again.
	res, err = notifier.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, service.NotifyResult{Selected: 1, Sent: 1}, res)
	require.Equal(t, 2, mailer.SendCallCount())
}

func TestNotifier_Run_FailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := &servicetesting.FakeOverdueRepository{}
	repo.OverdueReturns([]internal.OverdueTask{
		{Task: internal.Task{ID: 1, Title: "one"}, Email: "a@example.com"},
		{Task: internal.Task{ID: 2, Title: "two"}, Email: "b@example.com"},
		{Task: internal.Task{ID: 3, Title: "three"}, Email: "c@example.com"},
	}, nil)

	mailer := &servicetesting.FakeMailer{}
	mailer.SendReturnsOnCall(1, errors.New("relay unavailable"))

	res, err := newNotifier(t, repo, mailer, now).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, service.NotifyResult{Selected: 3, Sent: 2, Failed: 1}, res)
	require.Equal(t, 3, mailer.SendCallCount())
}

func TestNotifier_Run_Empty(t *testing.T) {
	t.Parallel()

	repo := &servicetesting.FakeOverdueRepository{}
	mailer := &servicetesting.FakeMailer{}

	res, err := newNotifier(t, repo, mailer, time.Now()).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, service.NotifyResult{}, res)
	require.Zero(t, mailer.SendCallCount())
}

func TestNotifier_Run_RepoError(t *testing.T) {
	t.Parallel()

	repo := &servicetesting.FakeOverdueRepository{}
	repo.OverdueReturns(nil, internal.NewErrorf(internal.ErrorCodeUnknown, "connection reset"))

	_, err := newNotifier(t, repo, &servicetesting.FakeMailer{}, time.Now()).Run(context.Background())
	requireCode(t, err, internal.ErrorCodeUnknown)
}
