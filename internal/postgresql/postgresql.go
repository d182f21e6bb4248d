// Package postgresql implements the Task and User repositories on top of PostgreSQL.
package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/postgresql/db"
)

//go:generate sqlc generate -f ../../sqlc.yaml

const otelName = "github.com/sanLimbu/tasks-api/internal/postgresql"

func convertPriority(p db.Priority) (internal.Priority, error) {
	switch p {
	case db.PriorityL:
		return internal.PriorityLow, nil
	case db.PriorityM:
		return internal.PriorityMedium, nil
	case db.PriorityH:
		return internal.PriorityHigh, nil
	}

	return "", fmt.Errorf("unknown value: %s", p)
}

func newPriority(p internal.Priority) db.Priority {
	switch p {
	case internal.PriorityLow:
		return db.PriorityL
	case internal.PriorityMedium:
		return db.PriorityM
	case internal.PriorityHigh:
		return db.PriorityH
	}

	return "invalid"
}

func newTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:  t,
		Valid: !t.IsZero(),
	}
}

func convertTask(t db.Task) (internal.Task, error) {
	priority, err := convertPriority(t.Priority)
	if err != nil {
		return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "convertPriority")
	}

	return internal.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    priority,
		Deadline:    t.Deadline.Time.UTC(),
		CreatedAt:   t.CreatedAt.Time.UTC(),
		Completed:   t.Completed,
	}, nil
}

func convertUser(u db.User) internal.User {
	return internal.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt.Time.UTC(),
	}
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(semconv.DBSystemPostgreSQL)

	return span
}
