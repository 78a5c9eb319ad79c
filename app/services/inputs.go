package services

// RegisterInput is the body of POST /register.
type RegisterInput struct {
	Email    *string `json:"email" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// LoginInput is the form body of POST /login. The username is the email.
type LoginInput struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ProductModel is a full product, as accepted by POST /createProduct.
type ProductModel struct {
	Name       *string  `json:"name" validate:"required,min=1,max=100"`
	Category   *string  `json:"category" validate:"required,min=1,max=100"`
	Price      *float64 `json:"price" validate:"required"`
	Stock      *int     `json:"stock" validate:"required,gt=0,lte=1000"`
	SKU        *string  `json:"sku" validate:"required,min=1,max=100"`
	SupplierID *int     `json:"supplier_id" validate:"required,gt=0,lte=1000"`
	Status     *string  `json:"status" validate:"required,min=1,max=100"`
}

// ProductUpdate carries the fields to change. Absent fields stay as stored.
type ProductUpdate struct {
	Name       *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Category   *string  `json:"category" validate:"omitempty,min=1,max=100"`
	Price      *float64 `json:"price"`
	Stock      *int     `json:"stock" validate:"omitempty,gt=0,lte=1000"`
	SKU        *string  `json:"sku" validate:"omitempty,min=1,max=100"`
	SupplierID *int     `json:"supplier_id" validate:"omitempty,gt=0,lte=1000"`
	Status     *string  `json:"status" validate:"omitempty,min=1,max=100"`
}

// SupplierModel is a full supplier, as accepted by POST /createSupplier.
type SupplierModel struct {
	Name        *string `json:"name" validate:"required"`
	ContactInfo *string `json:"contact_info" validate:"required"`
	Address     *string `json:"address" validate:"required"`
	PhoneNumber *string `json:"phone_number" validate:"required"`
	Email       *string `json:"email" validate:"required"`
}

// SupplierUpdate carries the fields to change.
type SupplierUpdate struct {
	Name        *string `json:"name"`
	ContactInfo *string `json:"contact_info"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
}
