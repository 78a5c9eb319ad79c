// Package testdb opens a migrated SQLite store for tests.
package testdb

import (
	"context"
	"path/filepath"
	"testing"

	gormlogger "gorm.io/gorm/logger"

	_ "github.com/shashiranjanraj/stockroom/database/migrations"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/migration"
)

// Open creates a fresh database file in t.TempDir, runs every registered
// migration and closes the store when the test ends.
func Open(t testing.TB) *database.Store {
	t.Helper()
	ctx := context.Background()

	store, err := database.Open(ctx, database.Options{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "stockroom.db"),
		LogLevel: gormlogger.Silent,
	})
	if err != nil {
		t.Fatalf("testdb: open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := migration.New(store.DB(ctx), nil).Run(ctx); err != nil {
		t.Fatalf("testdb: migrate: %v", err)
	}
	return store
}
