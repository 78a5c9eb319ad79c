package services

import "github.com/shashiranjanraj/stockroom/app/models"

// NewProduct builds a product from a validated create body.
func NewProduct(in ProductModel) models.Product {
	p := models.Product{}
	MergeProduct(&p, ProductUpdate(in))
	return p
}

// MergeProduct copies every non-nil field of in onto p.
func MergeProduct(p *models.Product, in ProductUpdate) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.SupplierID != nil {
		id := uint(*in.SupplierID)
		p.SupplierID = &id
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
}

// NewSupplier builds a supplier from a validated create body.
func NewSupplier(in SupplierModel) models.Supplier {
	s := models.Supplier{}
	MergeSupplier(&s, SupplierUpdate(in))
	return s
}

// MergeSupplier copies every non-nil field of in onto s.
func MergeSupplier(s *models.Supplier, in SupplierUpdate) {
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.ContactInfo != nil {
		s.ContactInfo = *in.ContactInfo
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.PhoneNumber != nil {
		s.PhoneNumber = *in.PhoneNumber
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
}
