package models

// Product is one catalogue line. SupplierID is a soft reference to
// Supplier.ID and may be null.
type Product struct {
	ID         uint    `gorm:"primaryKey"           json:"id"`
	Name       string  `gorm:"size:100"             json:"name"`
	Category   string  `gorm:"size:100"             json:"category"`
	Price      float64 `gorm:"not null;default:0"   json:"price"`
	Stock      int     `gorm:"not null;default:0"   json:"stock"`
	SKU        string  `gorm:"size:100;uniqueIndex" json:"sku"`
	SupplierID *uint   `gorm:"index"                json:"supplier_id"`
	Status     string  `gorm:"size:100"             json:"status"`
}

func (Product) TableName() string { return "products" }
