package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/internal"
)

//go:generate counterfeiter -o servicetesting/overdue_repository.gen.go . OverdueRepository

// OverdueRepository defines the datastore returning the pending Tasks past their deadline, across owners.
type OverdueRepository interface {
	Overdue(ctx context.Context, now time.Time) ([]internal.OverdueTask, error)
}

//go:generate counterfeiter -o servicetesting/mailer.gen.go . Mailer

// Mailer defines the delivery of plain text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotifyResult summarizes one notifier run.
type NotifyResult struct {
	Selected int
	Sent     int
	Failed   int
}

// Notifier emails the owners of overdue, incomplete Tasks. Nothing is recorded about sent messages, every
// run notifies again about the Tasks still overdue.
type Notifier struct {
	repo   OverdueRepository
	mailer Mailer
	logger *zap.Logger
	now    func() time.Time
	sent   metric.Int64Counter
	failed metric.Int64Counter
}

// NewNotifier instantiates the Notifier.
func NewNotifier(repo OverdueRepository, mailer Mailer, logger *zap.Logger) (*Notifier, error) {
	meter := otel.Meter(otelName)

	sent, err := meter.Int64Counter("notifier.sent", metric.WithDescription("Deadline alerts sent"))
	if err != nil {
		return nil, fmt.Errorf("meter.Int64Counter: %w", err)
	}

	failed, err := meter.Int64Counter("notifier.failed", metric.WithDescription("Deadline alerts that could not be sent"))
	if err != nil {
		return nil, fmt.Errorf("meter.Int64Counter: %w", err)
	}

	return &Notifier{
		repo:   repo,
		mailer: mailer,
		logger: logger,
		now:    time.Now,
		sent:   sent,
		failed: failed,
	}, nil
}

// WithClock replaces the clock used for determining which Tasks are overdue.
func (n *Notifier) WithClock(now func() time.Time) *Notifier {
	n.now = now

	return n
}

// Run sends one message per overdue Task. A failed send is logged and counted, the rest of the batch is
// still attempted.
func (n *Notifier) Run(ctx context.Context) (NotifyResult, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Notifier.Run")
	defer span.End()

	now := n.now()

	tasks, err := n.repo.Overdue(ctx, now)
	if err != nil {
		return NotifyResult{}, fmt.Errorf("repo overdue: %w", err)
	}

	res := NotifyResult{Selected: len(tasks)}

	for _, task := range tasks {
		subject, body := deadlineMessage(task.Task)

		if err := n.mailer.Send(ctx, task.Email, subject, body); err != nil {
			res.Failed++
			n.failed.Add(ctx, 1)

			n.logger.Warn("sending deadline alert",
				zap.Int64("task_id", task.ID),
				zap.Int64("user_id", task.UserID),
				zap.Error(err))

			continue
		}

		res.Sent++
		n.sent.Add(ctx, 1)
	}

	span.SetAttributes(
		attribute.Int("notifier.selected", res.Selected),
		attribute.Int("notifier.sent", res.Sent),
		attribute.Int("notifier.failed", res.Failed),
	)

	n.logger.Info("deadline alerts",
		zap.Time("now", now),
		zap.Int("selected", res.Selected),
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed))

	return res, nil
}

func deadlineMessage(task internal.Task) (string, string) {
	return fmt.Sprintf("Task Deadline Alert: %s", task.Title),
		fmt.Sprintf("The task '%s' is due!", task.Title)
}
