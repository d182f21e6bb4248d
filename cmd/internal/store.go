package internal

import (
	"context"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/config"
	"github.com/sanLimbu/tasks-api/internal/postgresql"
	"github.com/sanLimbu/tasks-api/internal/service"
	"github.com/sanLimbu/tasks-api/internal/sqlite"
)

// TaskStore is implemented by both database backends.
type TaskStore interface {
	service.TaskRepository
	service.TaskSearchRepository
	service.OverdueRepository
}

// Store holds the repositories of the configured database driver.
type Store struct {
	Task  TaskStore
	User  service.UserRepository
	close func()
}

// NewStore opens the database selected by DATABASE_DRIVER.
func NewStore(ctx context.Context, conf config.Database) (*Store, error) {
	switch conf.Driver {
	case config.DatabaseDriverSQLite:
		db, err := sqlite.Open(conf.SQLitePath)
		if err != nil {
			return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "sqlite.Open")
		}

		return &Store{
			Task: sqlite.NewTask(db),
			User: sqlite.NewUser(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	default:
		pool, err := NewPostgreSQL(ctx, conf)
		if err != nil {
			return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "NewPostgreSQL")
		}

		return &Store{
			Task:  postgresql.NewTask(pool),
			User:  postgresql.NewUser(pool),
			close: pool.Close,
		}, nil
	}
}

// Close releases the database connections.
func (s *Store) Close() {
	s.close()
}
