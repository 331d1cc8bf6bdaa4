package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest describes a product to publish. Price accepts a JSON number or string.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
}

// ProductUpdateRequest changes product fields. Omitted fields are kept.
type ProductUpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
}

// ProductResponse is a catalog entry.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	SellerID    int64     `json:"sellerId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
