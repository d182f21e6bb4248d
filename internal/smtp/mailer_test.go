package smtp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/internal/smtp"
)

type fakeClient struct {
	calls    int
	err      error
	messages []*mail.Msg
}

func (f *fakeClient) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	f.calls++

	if f.err != nil {
		return f.err
	}

	f.messages = append(f.messages, messages...)

	return nil
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	mailer := smtp.NewMailer(client, "noreply@example.com", zap.NewNop())

	err := mailer.Send(context.Background(), "alice@example.com", "Task Deadline Alert: Pay rent", "The task 'Pay rent' is due!")
	require.NoError(t, err)

	require.Len(t, client.messages, 1)

	msg := client.messages[0]

	from, err := msg.GetSender(false)
	require.NoError(t, err)
	require.Equal(t, "noreply@example.com", from)

	rcpts, err := msg.GetRecipients()
	require.NoError(t, err)
	require.Equal(t, []string{"alice@example.com"}, rcpts)

	require.Equal(t, []string{"Task Deadline Alert: Pay rent"}, msg.GetGenHeader(mail.HeaderSubject))
}

func TestMailer_Send_InvalidAddress(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	mailer := smtp.NewMailer(client, "noreply@example.com", zap.NewNop())

	require.Error(t, mailer.Send(context.Background(), "not an address", "s", "b"))
	require.Zero(t, client.calls)
}

func TestMailer_Send_CircuitOpens(t *testing.T) {
	t.Parallel()

	client := &fakeClient{err: errors.New("connection refused")}
	mailer := smtp.NewMailer(client, "noreply@example.com", zap.NewNop())

	for i := 0; i < 5; i++ {
		require.Error(t, mailer.Send(context.Background(), "alice@example.com", "s", "b"))
	}

	require.Equal(t, 3, client.calls, "remaining sends fail fast")
}
