package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/pkg/apperr"
)

// Repository is CRUD over one table, bound to a transaction or a plain handle.
type Repository[T any] struct {
	db       *gorm.DB
	notFound string
}

func newRepository[T any](db *gorm.DB, notFound string) Repository[T] {
	return Repository[T]{db: db, notFound: notFound}
}

// All returns every row ordered by id. Never nil.
func (r Repository[T]) All(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return rows, nil
}

// Find loads the row with id, or returns a not_found error.
func (r Repository[T]) Find(ctx context.Context, id uint) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(r.notFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find %d: %w", id, err)
	}
	return &row, nil
}

// Create inserts row and fills its id.
func (r Repository[T]) Create(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create: %w", err)
	}
	return nil
}

// Save writes every column of row.
func (r Repository[T]) Save(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Delete removes row by primary key.
func (r Repository[T]) Delete(ctx context.Context, row *T) error {
	res := r.db.WithContext(ctx).Delete(row)
	if res.Error != nil {
		return fmt.Errorf("delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(r.notFound)
	}
	return nil
}
