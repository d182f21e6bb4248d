// Package service implements the application services: Tasks, authentication and the deadline notifier.
package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sanLimbu/tasks-api/internal"
)

const otelName = "github.com/sanLimbu/tasks-api/internal/service"

//go:generate counterfeiter -o servicetesting/task_repository.gen.go . TaskRepository

// TaskRepository defines the datastore handling persisting Task records, every call is scoped to the owner.
type TaskRepository interface {
	Create(ctx context.Context, userID int64, params internal.CreateParams) (internal.Task, error)
	Delete(ctx context.Context, userID, id int64) error
	Find(ctx context.Context, userID, id int64) (internal.Task, error)
	Update(ctx context.Context, userID, id int64, params internal.UpdateParams) (internal.Task, error)
}

//go:generate counterfeiter -o servicetesting/task_search_repository.gen.go . TaskSearchRepository

// TaskSearchRepository defines the datastore handling searching Task records.
type TaskSearchRepository interface {
	Search(ctx context.Context, userID int64, params internal.SearchParams) ([]internal.Task, error)
}

//go:generate counterfeiter -o servicetesting/task_message_broker_repository.gen.go . TaskMessageBrokerRepository

// TaskMessageBrokerRepository defines the datastore handling publishing Task events.
type TaskMessageBrokerRepository interface {
	Created(ctx context.Context, task internal.Task) error
	Deleted(ctx context.Context, userID, id int64) error
	Updated(ctx context.Context, task internal.Task) error
}

// Task defines the application service in charge of interacting with Tasks.
type Task struct {
	repo      TaskRepository
	search    TaskSearchRepository
	msgBroker TaskMessageBrokerRepository
}

// NewTask instantiates the Task service, msgBroker is optional.
func NewTask(repo TaskRepository, search TaskSearchRepository, msgBroker TaskMessageBrokerRepository) *Task {
	return &Task{
		repo:      repo,
		search:    search,
		msgBroker: msgBroker,
	}
}

// By searches the Tasks owned by userID matching the received values.
func (t *Task) By(ctx context.Context, userID int64, params internal.SearchParams) ([]internal.Task, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Task.By")
	defer span.End()

	span.SetAttributes(attribute.Int64("user.id", userID))

	res, err := t.search.Search(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return res, nil
}

// Create stores a new record owned by userID.
func (t *Task) Create(ctx context.Context, userID int64, params internal.CreateParams) (internal.Task, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Task.Create")
	defer span.End()

	if err := params.Validate(); err != nil {
		return internal.Task{}, fmt.Errorf("params.Validate: %w", err)
	}

	task, err := t.repo.Create(ctx, userID, params)
	if err != nil {
		return internal.Task{}, fmt.Errorf("repo create: %w", err)
	}

	if t.msgBroker != nil {
		_ = t.msgBroker.Created(ctx, task) // XXX: Ignoring errors on purpose
	}

	return task, nil
}

// Delete removes an existing Task owned by userID from the datastore.
func (t *Task) Delete(ctx context.Context, userID, id int64) error {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Task.Delete")
	defer span.End()

	if err := t.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("repo delete: %w", err)
	}

	if t.msgBroker != nil {
		_ = t.msgBroker.Deleted(ctx, userID, id) // XXX: Ignoring errors on purpose
	}

	return nil
}

// Task gets an existing Task owned by userID from the datastore.
func (t *Task) Task(ctx context.Context, userID, id int64) (internal.Task, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Task.Task")
	defer span.End()

	task, err := t.repo.Find(ctx, userID, id)
	if err != nil {
		return internal.Task{}, fmt.Errorf("repo find: %w", err)
	}

	return task, nil
}

// Update updates the provided fields of an existing Task owned by userID.
func (t *Task) Update(ctx context.Context, userID, id int64, params internal.UpdateParams) (internal.Task, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Task.Update")
	defer span.End()

	if err := params.Validate(); err != nil {
		return internal.Task{}, fmt.Errorf("params.Validate: %w", err)
	}

	task, err := t.repo.Update(ctx, userID, id, params)
	if err != nil {
		return internal.Task{}, fmt.Errorf("repo update: %w", err)
	}

	if t.msgBroker != nil {
		_ = t.msgBroker.Updated(ctx, task) // XXX: Ignoring errors on purpose
	}

	return task, nil
}
