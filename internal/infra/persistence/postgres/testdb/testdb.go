// Package testdb opens a migrated in-memory SQLite database for repository and usecase tests.
package testdb

import (
	"io"
	"log/slog"
	"testing"

	"himart/internal/infra/persistence/gormlog"
	"himart/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New returns an isolated database that is closed when the test ends. Statement logs are discarded.
func New(tb testing.TB) *gorm.DB {
	tb.Helper()

	return NewWithLogger(tb, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// NewWithLogger is New with failed and slow statements logged to log.
func NewWithLogger(tb testing.TB, log *slog.Logger, opts ...gormlog.Option) *gorm.DB {
	tb.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 gormlog.New(log, opts...),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	// A single connection keeps the in-memory database alive and serialises access.
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		tb.Fatalf("migrate: %v", err)
	}

	return db
}
