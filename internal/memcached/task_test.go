package memcached_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/memcached"
)

type fakeClient struct {
	mu    sync.Mutex
	items map[string][]byte
}

func (f *fakeClient) Get(key string) (*memcache.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.items[key]
	if !ok {
		return nil, memcache.ErrCacheMiss
	}

	return &memcache.Item{Key: key, Value: v}, nil
}

func (f *fakeClient) Set(item *memcache.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items[item.Key] = item.Value

	return nil
}

func (f *fakeClient) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.items[key]; !ok {
		return memcache.ErrCacheMiss
	}

	delete(f.items, key)

	return nil
}

type fakeStore struct {
	tasks    map[int64]internal.Task
	finds    int
	onDelete func()
}

func (f *fakeStore) Create(_ context.Context, userID int64, params internal.CreateParams) (internal.Task, error) {
	task := internal.Task{
		ID:       int64(len(f.tasks) + 1),
		UserID:   userID,
		Title:    params.Title,
		Priority: params.Priority,
		Deadline: params.Deadline,
	}

	f.tasks[task.ID] = task

	return task, nil
}

func (f *fakeStore) Delete(_ context.Context, userID, id int64) error {
	if f.onDelete != nil {
		f.onDelete()
	}

	if task, ok := f.tasks[id]; !ok || task.UserID != userID {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "task not found")
	}

	delete(f.tasks, id)

	return nil
}

func (f *fakeStore) Find(_ context.Context, userID, id int64) (internal.Task, error) {
	f.finds++

	task, ok := f.tasks[id]
	if !ok || task.UserID != userID {
		return internal.Task{}, internal.NewErrorf(internal.ErrorCodeNotFound, "task not found")
	}

	return task, nil
}

func (f *fakeStore) Update(_ context.Context, userID, id int64, params internal.UpdateParams) (internal.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.UserID != userID {
		return internal.Task{}, internal.NewErrorf(internal.ErrorCodeNotFound, "task not found")
	}

	if params.Completed != nil {
		task.Completed = *params.Completed
	}

	f.tasks[id] = task

	return task, nil
}

func TestTask(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := &fakeStore{tasks: map[int64]internal.Task{}}
	client := &fakeClient{items: map[string][]byte{}}

	cache := memcached.NewTask(client, store, zap.NewNop())

	created, err := cache.Create(ctx, 1, internal.CreateParams{
		Title:    "cached",
		Priority: internal.PriorityLow,
		Deadline: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Contains(t, client.items, "task:1:1")

	found, err := cache.Find(ctx, 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, found)
	require.Zero(t, store.finds, "hit served from the cache")

	_, err = cache.Find(ctx, 2, created.ID)
	requireNotFound(t, err)
	require.Equal(t, 1, store.finds, "other owners miss the cache")

	completed := true

	updated, err := cache.Update(ctx, 1, created.ID, internal.UpdateParams{Completed: &completed})
	require.NoError(t, err)

	found, err = cache.Find(ctx, 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, found)
	require.True(t, found.Completed)

	require.NoError(t, cache.Delete(ctx, 1, created.ID))
	require.NotContains(t, client.items, "task:1:1")

	_, err = cache.Find(ctx, 1, created.ID)
	requireNotFound(t, err)

	err = cache.Delete(ctx, 1, created.ID)
	requireNotFound(t, err)
}

func TestTask_DeleteRacingFind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := &fakeStore{tasks: map[int64]internal.Task{}}
	client := &fakeClient{items: map[string][]byte{}}

	cache := memcached.NewTask(client, store, zap.NewNop())

	created, err := cache.Create(ctx, 1, internal.CreateParams{
		Title:    "racing",
		Priority: internal.PriorityHigh,
		Deadline: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	client.items = map[string][]byte{}

	// A reader misses the cache while the row is still in the store.
	store.onDelete = func() {
		_, err := cache.Find(ctx, 1, created.ID)
		require.NoError(t, err)
		require.Contains(t, client.items, "task:1:1")
	}

	require.NoError(t, cache.Delete(ctx, 1, created.ID))
	require.NotContains(t, client.items, "task:1:1")

	_, err = cache.Find(ctx, 1, created.ID)
	requireNotFound(t, err)
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()

	var ierr *internal.Error
	require.ErrorAs(t, err, &ierr)
	require.Equal(t, internal.ErrorCodeNotFound, ierr.Code())
}
