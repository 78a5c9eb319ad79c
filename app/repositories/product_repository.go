package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/app/models"
)

type ProductRepository struct {
	Repository[models.Product]
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return ProductRepository{newRepository[models.Product](db, "Product not found")}
}
