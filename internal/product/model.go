package product

import "time"

// Product is a supplier listing. Prices are integer minor units; a set
// DiscountedPrice takes precedence at checkout.
type Product struct {
	ID              string     `json:"id"`
	SupplierID      string     `json:"supplierId"`
	CategoryID      *string    `json:"categoryId,omitempty"`
	NameEn          string     `json:"nameEn"`
	NameAr          *string    `json:"nameAr,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Price           int64      `json:"price"`
	DiscountedPrice *int64     `json:"discountedPrice,omitempty"`
	IsHotDeal       bool       `json:"isHotDeal"`
	IsAvailable     bool       `json:"isAvailable"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type CreateProductInput struct {
	SupplierID      string
	CategoryID      *string
	NameEn          string
	NameAr          *string
	Description     *string
	Price           int64
	DiscountedPrice *int64
}

type Filter struct {
	SupplierID    *string
	CategoryID    *string
	AvailableOnly bool
}
