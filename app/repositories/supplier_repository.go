package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/app/models"
)

type SupplierRepository struct {
	Repository[models.Supplier]
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return SupplierRepository{newRepository[models.Supplier](db, "Supplier not found")}
}

// DetachProducts clears supplier_id on every product that references id and
// returns how many rows changed.
func (r SupplierRepository) DetachProducts(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("supplier_id = ?", id).
		Update("supplier_id", nil)
	if res.Error != nil {
		return 0, fmt.Errorf("detach products from supplier %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
