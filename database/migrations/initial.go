package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_suppliers_table", &CreateSuppliersTable{})
	migration.Register("20260101000002_create_products_table", &CreateProductsTable{})
}

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}

type CreateSuppliersTable struct{}

func (m *CreateSuppliersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Supplier{})
}

func (m *CreateSuppliersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Supplier{})
}

// CreateProductsTable has no foreign key on supplier_id; deleting a supplier
// clears the column instead.
type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{})
}
