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
)

// Inventory event names, published after the write commits.
const (
	ProductCreated  = "product.created"
	ProductUpdated  = "product.updated"
	ProductDeleted  = "product.deleted"
	SupplierCreated = "supplier.created"
	SupplierUpdated = "supplier.updated"
	SupplierDeleted = "supplier.deleted"
)

const productsCacheKey = "products"

type ProductService struct {
	store  *database.Store
	cache  cache.Store
	ttl    time.Duration
	events *event.Bus
}

func NewProductService(store *database.Store, c cache.Store, ttl time.Duration, events *event.Bus) *ProductService {
	return &ProductService{store: store, cache: c, ttl: ttl, events: events}
}

// List returns every product through the list cache. Writes do not
// invalidate it, so the result may be up to one TTL old.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := cache.Remember(ctx, s.cache, productsCacheKey, s.ttl, func(ctx context.Context) ([]models.Product, error) {
		return repositories.NewProductRepository(s.store.DB(ctx)).All(ctx)
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Find reads one product directly from the store.
func (s *ProductService) Find(ctx context.Context, id uint) (*models.Product, error) {
	p, err := repositories.NewProductRepository(s.store.DB(ctx)).Find(ctx, id)
	if err != nil {
		return nil, apperr.From(err)
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductModel) (*models.Product, error) {
	p := NewProduct(in)
	err := s.store.WithinTx(ctx, func(tx *gorm.DB) error {
		return repositories.NewProductRepository(tx).Create(ctx, &p)
	})
	if err != nil {
		return nil, apperr.From(err)
	}
	s.events.Fire(ProductCreated, p)
	return &p, nil
}

// Update merges the provided fields onto the stored row and saves it. Rows
// is the table after the update, read past the list cache.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductUpdate) (*Change[models.Product], error) {
	var ch Change[models.Product]
	err := s.store.WithinTx(ctx, func(tx *gorm.DB) error {
		repo := repositories.NewProductRepository(tx)
		found, err := repo.Find(ctx, id)
		if err != nil {
			return err
		}
		MergeProduct(found, in)
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
	s.events.Fire(ProductUpdated, ch.Row)
	return &ch, nil
}

// Delete removes the product. Row is the product as it was; Rows is what
// remains.
func (s *ProductService) Delete(ctx context.Context, id uint) (*Change[models.Product], error) {
	var ch Change[models.Product]
	err := s.store.WithinTx(ctx, func(tx *gorm.DB) error {
		repo := repositories.NewProductRepository(tx)
		found, err := repo.Find(ctx, id)
		if err != nil {
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
	s.events.Fire(ProductDeleted, ch.Row)
	return &ch, nil
}
