package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. SellerID is zero for products without a known publisher.
type Product struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	SellerID    int64
	CreatedAt   time.Time
}

// NewProduct carries the fields required to publish a product.
type NewProduct struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	SellerID    int64
}

// ProductUpdate lists the product fields a seller may change. Nil fields are kept.
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
}

// ProductFilter narrows catalog listings. Empty fields match everything.
type ProductFilter struct {
	Category string
	Query    string
}
