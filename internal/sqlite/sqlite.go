// Package sqlite implements the Task and User repositories on top of SQLite, used for development and tests.
package sqlite

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sanLimbu/tasks-api/internal"
)

const otelName = "github.com/sanLimbu/tasks-api/internal/sqlite"

type userModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"size:150;not null;uniqueIndex"`
	Email        string    `gorm:"size:254;not null"`
	PasswordHash string    `gorm:"not null"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

type taskModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      int64     `gorm:"not null;index"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"not null"`
	Priority    string    `gorm:"size:1;not null"`
	Deadline    time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
	Completed   bool      `gorm:"not null"`
}

func (taskModel) TableName() string { return "tasks" }

// Open opens the database at path and creates the schema when missing.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "gorm.Open")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "db.DB")
	}

	// A single connection keeps ":memory:" databases alive and avoids "database is locked" errors.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&userModel{}, &taskModel{}); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "db.AutoMigrate")
	}

	return db, nil
}

func convertTask(m taskModel) internal.Task {
	return internal.Task{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    internal.Priority(m.Priority),
		Deadline:    m.Deadline.UTC(),
		CreatedAt:   m.CreatedAt.UTC(),
		Completed:   m.Completed,
	}
}

func convertUser(m userModel) internal.User {
	return internal.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

// escapeLike escapes the LIKE wildcards so the search term is matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(semconv.DBSystemSqlite)

	return span
}
