package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/app/repositories"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/storage"
)

// Snapshot is the document written by Export.
type Snapshot struct {
	ExportedAt time.Time         `json:"exported_at"`
	Products   []models.Product  `json:"products"`
	Suppliers  []models.Supplier `json:"suppliers"`
}

type ExportService struct {
	store *database.Store
	now   func() time.Time
}

func NewExportService(store *database.Store) *ExportService {
	return &ExportService{store: store, now: time.Now}
}

// Export reads both tables in one transaction, so the snapshot is consistent,
// and writes it to dir on disk. It returns the path written.
func (s *ExportService) Export(ctx context.Context, disk storage.Disk, dir string) (string, error) {
	snap := Snapshot{ExportedAt: s.now().UTC()}
	err := s.store.WithinTx(ctx, func(tx *gorm.DB) error {
		var err error
		if snap.Products, err = repositories.NewProductRepository(tx).All(ctx); err != nil {
			return err
		}
		snap.Suppliers, err = repositories.NewSupplierRepository(tx).All(ctx)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("export: read inventory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: encode: %w", err)
	}

	name := path.Join(dir, "inventory-"+snap.ExportedAt.Format("20060102T150405Z")+".json")
	if err := disk.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("export: write: %w", err)
	}
	return name, nil
}
