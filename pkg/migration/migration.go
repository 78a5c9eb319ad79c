// Package migration runs versioned schema changes and records them in the
// stockroom_migrations table.
//
// Migrations register themselves from init() in database/migrations:
//
//	func init() {
//	    migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
//	}
//
// and are applied in name order, one batch per Run.
package migration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/pkg/logger"
)

// Migration is one reversible schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// Entry pairs a migration with its name.
type Entry struct {
	Name      string
	Migration Migration
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "stockroom_migrations" }

var (
	mu       sync.Mutex
	registry []Entry
)

// Register adds m to the global registry.
func Register(name string, m Migration) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, Entry{Name: name, Migration: m})
}

// Registered returns the global registry sorted by name.
func Registered() []Entry {
	mu.Lock()
	defer mu.Unlock()
	return sorted(registry)
}

// Status is one line of `migrate:status`.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Runner applies a fixed list of migrations.
type Runner struct {
	db      *gorm.DB
	out     io.Writer
	entries []Entry
}

// New builds a runner over the global registry. Progress goes to out.
func New(db *gorm.DB, out io.Writer) *Runner {
	return NewWith(db, out, Registered())
}

// NewWith builds a runner over entries.
func NewWith(db *gorm.DB, out io.Writer, entries []Entry) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out, entries: sorted(entries)}
}

func (r *Runner) ensureTable(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

// Pending returns the migrations not yet recorded, in name order.
func (r *Runner) Pending(ctx context.Context) ([]Entry, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	ran, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Entry
	for _, e := range r.entries {
		if _, ok := ran[e.Name]; !ok {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

// Run applies every pending migration as one batch. Each migration and its
// record commit together.
func (r *Runner) Run(ctx context.Context) (int, error) {
	pending, err := r.Pending(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}

	batch, err := r.lastBatch(ctx)
	if err != nil {
		return 0, err
	}
	batch++

	for _, e := range pending {
		fmt.Fprintf(r.out, "Migrating: %s\n", e.Name)
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := e.Migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&record{Name: e.Name, Batch: batch}).Error
		})
		if err != nil {
			return 0, fmt.Errorf("migration: %s up: %w", e.Name, err)
		}
		fmt.Fprintf(r.out, "Migrated:  %s\n", e.Name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return len(pending), nil
}

// Rollback reverts the most recent batch in reverse order.
func (r *Runner) Rollback(ctx context.Context) (int, error) {
	if err := r.ensureTable(ctx); err != nil {
		return 0, err
	}
	batch, err := r.lastBatch(ctx)
	if err != nil {
		return 0, err
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var records []record
	if err := r.db.WithContext(ctx).Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return 0, fmt.Errorf("migration: load batch %d: %w", batch, err)
	}

	byName := make(map[string]Migration, len(r.entries))
	for _, e := range r.entries {
		byName[e.Name] = e.Migration
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return 0, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}
		fmt.Fprintf(r.out, "Rolling back: %s\n", rec.Name)
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&record{}, rec.ID).Error
		})
		if err != nil {
			return 0, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		fmt.Fprintf(r.out, "Rolled back:  %s\n", rec.Name)
	}

	logger.Info("migration: rolled back", "count", len(records), "batch", batch)
	return len(records), nil
}

// Status lists every known migration with its batch, if it ran.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	ran, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(r.entries))
	for _, e := range r.entries {
		rec, ok := ran[e.Name]
		out = append(out, Status{Name: e.Name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}

func (r *Runner) ran(ctx context.Context) (map[string]record, error) {
	var records []record
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: load records: %w", err)
	}
	m := make(map[string]record, len(records))
	for _, rec := range records {
		m[rec.Name] = rec
	}
	return m, nil
}

func (r *Runner) lastBatch(ctx context.Context) (int, error) {
	var batch int
	if err := r.db.WithContext(ctx).Model(&record{}).Select("COALESCE(MAX(batch), 0)").Scan(&batch).Error; err != nil {
		return 0, fmt.Errorf("migration: last batch: %w", err)
	}
	return batch, nil
}

func sorted(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
