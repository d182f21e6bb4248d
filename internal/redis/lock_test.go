package redis_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	internalredis "github.com/sanLimbu/tasks-api/internal/redis"
)

// fakeClient implements SETNX and the unlock script against a map.
type fakeClient struct {
	mu   sync.Mutex
	keys map[string]interface{}
	err  error
}

func (f *fakeClient) SetNX(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}

	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}

	f.keys[key] = value

	return redis.NewBoolResult(true, nil)
}

func (f *fakeClient) Eval(ctx context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.keys[keys[0]] == args[0] {
		delete(f.keys, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}

	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeClient) EvalSha(ctx context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.Eval(ctx, "", keys, args...)
}

func (f *fakeClient) ScriptExists(ctx context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeClient) ScriptLoad(ctx context.Context, script string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func TestLock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := &fakeClient{keys: map[string]interface{}{}}

	first := internalredis.NewLock(client, time.Minute)
	second := internalredis.NewLock(client, time.Minute)

	release, ok, err := first.Acquire(ctx, "notifier:lock:203001011000")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = second.Acquire(ctx, "notifier:lock:203001011000")
	require.NoError(t, err)
	require.False(t, ok, "lock already held")

	other, ok, err := second.Acquire(ctx, "notifier:lock:203001011001")
	require.NoError(t, err)
	require.True(t, ok, "keys are locked independently")
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))
	require.Empty(t, client.keys)

	release, ok, err = second.Acquire(ctx, "notifier:lock:203001011000")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, release(ctx))
}

func TestLock_Error(t *testing.T) {
	t.Parallel()

	client := &fakeClient{keys: map[string]interface{}{}, err: errors.New("connection refused")}

	_, ok, err := internalredis.NewLock(client, time.Minute).Acquire(context.Background(), "notifier:lock")
	require.Error(t, err)
	require.False(t, ok)
}
