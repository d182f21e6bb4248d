// Package smtp sends plain text email through an SMTP relay guarded by a circuit breaker.
package smtp

import (
	"context"
	"errors"
	"time"

	"github.com/mercari/go-circuitbreaker"
	"github.com/wneessen/go-mail"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/internal"
)

const otelName = "github.com/sanLimbu/tasks-api/internal/smtp"

// Client defines the SMTP client used for delivering messages, *mail.Client implements it.
type Client interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer sends messages from a fixed sender address.
type Mailer struct {
	client  Client
	from    string
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewMailer instantiates the Mailer. After 3 consecutive failures the breaker opens for 30 seconds and
// sends fail without contacting the relay.
func NewMailer(client Client, from string, logger *zap.Logger) *Mailer {
	return &Mailer{
		client: client,
		from:   from,
		logger: logger,
		breaker: circuitbreaker.New(
			circuitbreaker.WithTripFunc(circuitbreaker.NewTripFuncConsecutiveFailures(3)),
			circuitbreaker.WithOpenTimeout(30*time.Second),
			circuitbreaker.WithOnStateChangeHookFn(func(from, to circuitbreaker.State) {
				logger.Warn("smtp circuit breaker", zap.String("from", string(from)), zap.String("to", string(to)))
			}),
		),
	}
}

// Send delivers one plain text message to the address.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Mailer.Send")
	defer span.End()

	span.SetAttributes(attribute.String("mail.to", to))

	msg := mail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "msg.From")
	}

	if err := msg.To(to); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "msg.To")
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	_, err := m.breaker.Do(ctx, func() (interface{}, error) {
		return nil, m.client.DialAndSendWithContext(ctx, msg)
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "circuit open")
		}

		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "client.DialAndSendWithContext")
	}

	return nil
}
