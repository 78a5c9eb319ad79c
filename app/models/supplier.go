package models

// Supplier is a vendor that products may reference.
type Supplier struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255"   json:"name"`
	ContactInfo string `gorm:"size:255"   json:"contact_info"`
	Address     string `gorm:"size:255"   json:"address"`
	PhoneNumber string `gorm:"size:50"    json:"phone_number"`
	Email       string `gorm:"size:255"   json:"email"`
}

func (Supplier) TableName() string { return "suppliers" }
