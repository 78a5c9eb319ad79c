package migration_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/stockroom/pkg/migration"
)

type note struct {
	ID   uint
	Body string
}

type tag struct {
	ID   uint
	Name string
}

type createTable struct{ model any }

func (m createTable) Up(db *gorm.DB) error   { return db.AutoMigrate(m.model) }
func (m createTable) Down(db *gorm.DB) error { return db.Migrator().DropTable(m.model) }

type broken struct{}

func (broken) Up(*gorm.DB) error   { return errors.New("boom") }
func (broken) Down(*gorm.DB) error { return nil }

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "m.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestRunStatusRollback(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	var out bytes.Buffer

	// Registered out of order; the runner sorts by name.
	r := migration.NewWith(db, &out, []migration.Entry{
		{Name: "0002_create_tags", Migration: createTable{&tag{}}},
		{Name: "0001_create_notes", Migration: createTable{&note{}}},
	})

	n, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, db.Migrator().HasTable(&note{}))
	assert.True(t, db.Migrator().HasTable(&tag{}))
	assert.Less(t, bytes.Index(out.Bytes(), []byte("0001")), bytes.Index(out.Bytes(), []byte("0002")))

	n, err = r.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	status, err := r.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []migration.Status{
		{Name: "0001_create_notes", Ran: true, Batch: 1},
		{Name: "0002_create_tags", Ran: true, Batch: 1},
	}, status)

	n, err = r.Rollback(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, db.Migrator().HasTable(&note{}))

	pending, err := r.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	r := migration.NewWith(db, nil, []migration.Entry{
		{Name: "0001_create_notes", Migration: createTable{&note{}}},
		{Name: "0002_broken", Migration: broken{}},
	})

	_, err := r.Run(ctx)
	require.Error(t, err)

	status, err := r.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status[0].Ran)
	assert.False(t, status[1].Ran)
}
