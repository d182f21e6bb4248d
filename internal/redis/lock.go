// Package redis implements a distributed lock so only one notifier replica runs per tick.
package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/tasks-api/internal"
)

const otelName = "github.com/sanLimbu/tasks-api/internal/redis"

// unlockScript deletes the key only when it still holds our token, the lock may have expired and been
// taken by another replica.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Client defines the redis commands used by Lock, *redis.Client implements it.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	redis.Scripter
}

// Lock is a SETNX based mutex with a TTL, one per key.
type Lock struct {
	client Client
	ttl    time.Duration
}

// NewLock instantiates the Lock.
func NewLock(client Client, ttl time.Duration) *Lock {
	return &Lock{
		client: client,
		ttl:    ttl,
	}
}

// Acquire tries to take the lock on key once. When the lock is held by somebody else it returns false,
// otherwise the returned function releases it before the TTL expires.
func (l *Lock) Acquire(ctx context.Context, key string) (func(context.Context) error, bool, error) {
	ctx, span := newOTELSpan(ctx, "Lock.Acquire")
	defer span.End()

	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "client.SetNX")
	}

	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		ctx, span := newOTELSpan(ctx, "Lock.Release")
		defer span.End()

		if err := unlockScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "unlockScript.Run")
		}

		return nil
	}

	return release, true, nil
}

func newOTELSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(semconv.DBSystemRedis)

	return ctx, span
}
