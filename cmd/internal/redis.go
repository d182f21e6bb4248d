package internal

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/config"
)

// NewRedis instantiates the Redis client.
func NewRedis(ctx context.Context, conf config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: conf.Host,
		DB:   conf.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "rdb.Ping")
	}

	return rdb, nil
}
