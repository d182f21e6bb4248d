package memcached

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/internal"
)

// Task decorates a TaskStore with cache-aside reads.
type Task struct {
	client     Client
	orig       TaskStore
	expiration time.Duration
	logger     *zap.Logger
}

// TaskStore defines the repository being cached.
type TaskStore interface {
	Create(ctx context.Context, userID int64, params internal.CreateParams) (internal.Task, error)
	Delete(ctx context.Context, userID, id int64) error
	Find(ctx context.Context, userID, id int64) (internal.Task, error)
	Update(ctx context.Context, userID, id int64, params internal.UpdateParams) (internal.Task, error)
}

// NewTask instantiates the Task decorator, entries expire after 15 minutes.
func NewTask(client Client, orig TaskStore, logger *zap.Logger) *Task {
	return &Task{
		client:     client,
		orig:       orig,
		expiration: 15 * time.Minute,
		logger:     logger,
	}
}

// Create inserts the task and caches it.
func (t *Task) Create(ctx context.Context, userID int64, params internal.CreateParams) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Create").End()

	task, err := t.orig.Create(ctx, userID, params)
	if err != nil {
		return internal.Task{}, err
	}

	setTask(ctx, t.client, taskKey(task.UserID, task.ID), &task, t.expiration)

	return task, nil
}

// Delete deletes the task and evicts it.
func (t *Task) Delete(ctx context.Context, userID, id int64) error {
	defer newOTELSpan(ctx, "Task.Delete").End()

	// Evict only once the row is gone from the store.
	err := t.orig.Delete(ctx, userID, id)

	deleteTask(ctx, t.client, taskKey(userID, id))

	return err
}

// Find returns the cached task, on a miss the task is read from the store and cached.
func (t *Task) Find(ctx context.Context, userID, id int64) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Find").End()

	key := taskKey(userID, id)

	var res internal.Task

	ok, err := getTask(ctx, t.client, key, &res)
	if err != nil {
		t.logger.Warn("Find: cache unavailable", zap.Error(err))
	}

	if ok {
		return res, nil
	}

	res, err = t.orig.Find(ctx, userID, id)
	if err != nil {
		return internal.Task{}, err
	}

	setTask(ctx, t.client, key, &res, t.expiration)

	return res, nil
}

// Update updates the task and refreshes the cached value.
func (t *Task) Update(ctx context.Context, userID, id int64, params internal.UpdateParams) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Update").End()

	key := taskKey(userID, id)

	task, err := t.orig.Update(ctx, userID, id, params)
	if err != nil {
		deleteTask(ctx, t.client, key)

		return internal.Task{}, err
	}

	setTask(ctx, t.client, key, &task, t.expiration)

	return task, nil
}
