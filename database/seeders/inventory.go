package seeders

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/stockroom/app/models"
)

func init() {
	Register("inventory", SeedInventory)
}

var demoSuppliers = []models.Supplier{
	{Name: "Acme Components", ContactInfo: "Jordan Reyes", Address: "12 Foundry Lane, Leeds", PhoneNumber: "+44 113 496 0000", Email: "orders@acme.example"},
	{Name: "Northwind Traders", ContactInfo: "Sam Okafor", Address: "400 Harbour Rd, Seattle", PhoneNumber: "+1 206 555 0100", Email: "sales@northwind.example"},
	{Name: "Blue Ridge Supply", ContactInfo: "Priya Nair", Address: "8 Summit Ave, Asheville", PhoneNumber: "+1 828 555 0142", Email: "hello@blueridge.example"},
}

type demoProduct struct {
	product  models.Product
	supplier int
}

var demoProducts = []demoProduct{
	{models.Product{Name: "Hex Bolt M8", Category: "Fasteners", Price: 0.35, Stock: 900, SKU: "FAS-M8-HEX", Status: "active"}, 0},
	{models.Product{Name: "Cordless Drill", Category: "Tools", Price: 89.99, Stock: 40, SKU: "TOL-DRL-18V", Status: "active"}, 1},
	{models.Product{Name: "Safety Goggles", Category: "Safety", Price: 6.5, Stock: 250, SKU: "SAF-GOG-01", Status: "active"}, 2},
	{models.Product{Name: "Work Gloves", Category: "Safety", Price: 4.25, Stock: 12, SKU: "SAF-GLV-L", Status: "low_stock"}, 2},
	{models.Product{Name: "Bench Vise", Category: "Tools", Price: 54, Stock: 8, SKU: "TOL-VIS-6IN", Status: "discontinued"}, 1},
}

// SeedInventory inserts the demo suppliers and their products. Rows whose
// sku already exists are skipped, so seeding twice is harmless.
func SeedInventory(ctx context.Context, db *gorm.DB) error {
	suppliers := make([]models.Supplier, len(demoSuppliers))
	copy(suppliers, demoSuppliers)

	for i := range suppliers {
		err := db.WithContext(ctx).
			Where(models.Supplier{Name: suppliers[i].Name}).
			FirstOrCreate(&suppliers[i]).Error
		if err != nil {
			return err
		}
	}

	products := make([]models.Product, 0, len(demoProducts))
	for _, d := range demoProducts {
		p := d.product
		id := suppliers[d.supplier].ID
		p.SupplierID = &id
		products = append(products, p)
	}

	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "sku"}}, DoNothing: true}).
		Create(&products).Error
}
