// Package seeders fills a fresh database with demo data.
//
// Seeders register themselves from init():
//
//	func init() { seeders.Register("suppliers", SeedSuppliers) }
//
// and run in registration order via `stockroom seed`.
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc inserts rows using db, which is a transaction.
type SeederFunc func(ctx context.Context, db *gorm.DB) error

type entry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []entry
)

func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, entry{name: name, fn: fn})
}

// RunAll runs every seeder in one transaction and stops at the first error,
// leaving the database untouched.
func RunAll(ctx context.Context, db *gorm.DB, out io.Writer) error {
	mu.Lock()
	current := append([]entry(nil), entries...)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(out, "No seeders registered.")
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range current {
			fmt.Fprintf(out, "Seeding: %s\n", e.name)
			if err := e.fn(ctx, tx); err != nil {
				return fmt.Errorf("seeder %q: %w", e.name, err)
			}
		}
		return nil
	})
}
