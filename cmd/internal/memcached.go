package internal

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/config"
)

// NewMemcached instantiates the Memcached client, only one server is supported.
func NewMemcached(conf config.Memcached) (*memcache.Client, error) {
	client := memcache.New(conf.Host)

	if err := client.Ping(); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "client.Ping")
	}

	client.Timeout = 100 * time.Millisecond
	client.MaxIdleConns = 100

	return client, nil
}
