package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/app/repositories"
	"github.com/shashiranjanraj/stockroom/pkg/apperr"
	"github.com/shashiranjanraj/stockroom/pkg/cache"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/event"
	"github.com/shashiranjanraj/stockroom/pkg/logger"
)

const suppliersCacheKey = "suppliers"

type SupplierService struct {
	store  *database.Store
	cache  cache.Store
	ttl    time.Duration
	events *event.Bus
}

func NewSupplierService(store *database.Store, c cache.Store, ttl time.Duration, events *event.Bus) *SupplierService {
	return &SupplierService{store: store, cache: c, ttl: ttl, events: events}
}

// List returns every supplier through the list cache.
func (s *SupplierService) List(ctx context.Context) ([]models.Supplier, error) {
	suppliers, err := cache.Remember(ctx, s.cache, suppliersCacheKey, s.ttl, func(ctx context.Context) ([]models.Supplier, error) {
		return repositories.NewSupplierRepository(s.store.DB(ctx)).All(ctx)
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	return suppliers, nil
}

func (s *SupplierService) Find(ctx context.Context, id uint) (*models.Supplier, error) {
	sup, err := repositories.NewSupplierRepository(s.store.DB(ctx)).Find(ctx, id)
	if err != nil {
		return nil, apperr.From(err)
	}
	return sup, nil
}

// Create inserts the supplier. Rows is the full supplier table afterwards.
func (s *SupplierService) Create(ctx context.Context, in SupplierModel) (*Change[models.Supplier], error) {
	ch := Change[models.Supplier]{Row: NewSupplier(in)}
	err := s.store.WithinTx(ctx, func(tx *gorm.DB) error {
		repo := repositories.NewSupplierRepository(tx)
		if err := repo.Create(ctx, &ch.Row); err != nil {
			return err
		}
		var err error
		ch.Rows, err = repo.All(ctx)
		return err
	})
	if err != nil {
		return nil, apperr.From(err)
	}
	s.events.Fire(SupplierCreated, ch.Row)
	return &ch, nil
}

func (s *SupplierService) Update(ctx context.Context, id uint, in SupplierUpdate) (*Change[models.Supplier], error) {
	var ch Change[models.Supplier]
	err := s.store.WithinTx(ctx, func(tx *gorm.DB) error {
		repo := repositories.NewSupplierRepository(tx)
		found, err := repo.Find(ctx, id)
		if err != nil {
			return err
		}
		MergeSupplier(found, in)
		if err := repo.Save(ctx, found); err != nil {
			return err
		}
		ch.Row = *found
		ch.Rows, err = repo.All(ctx)
		return err
	})
	if err != nil {
		return nil, apperr.From(err)
	}
	s.events.Fire(SupplierUpdated, ch.Row)
	return &ch, nil
}

// Delete removes the supplier. Products that referenced it keep existing
// with supplier_id cleared, in the same transaction.
func (s *SupplierService) Delete(ctx context.Context, id uint) (*Change[models.Supplier], error) {
	var (
		ch       Change[models.Supplier]
		detached int64
	)
	err := s.store.WithinTx(ctx, func(tx *gorm.DB) error {
		repo := repositories.NewSupplierRepository(tx)
		found, err := repo.Find(ctx, id)
		if err != nil {
			return err
		}
		if detached, err = repo.DetachProducts(ctx, id); err != nil {
			return err
		}
		if err := repo.Delete(ctx, found); err != nil {
			return err
		}
		ch.Row = *found
		ch.Rows, err = repo.All(ctx)
		return err
	})
	if err != nil {
		return nil, apperr.From(err)
	}
	if detached > 0 {
		logger.WithCtx(ctx).Info("supplier deleted, products detached", "supplier_id", id, "products", detached)
	}
	s.events.Fire(SupplierDeleted, ch.Row)
	return &ch, nil
}
