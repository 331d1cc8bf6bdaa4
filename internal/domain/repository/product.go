package repository

import (
	"context"

	"github.com/polkiloo/stockease/internal/domain/model"
)

// ProductRepository describes catalog persistence.
type ProductRepository interface {
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, product model.NewProduct) (*model.Product, error)
	// Update overwrites the editable fields of product.
	Update(ctx context.Context, product model.Product) (*model.Product, error)
	// Delete removes the product and any cart lines holding it. Placed orders keep their snapshot.
	Delete(ctx context.Context, id int64) error
	// Bestsellers ranks products by units sold across all orders.
	Bestsellers(ctx context.Context, limit int) ([]model.Product, error)
}

// CartRepository describes per-user cart persistence.
// Item operations are scoped to the owning user; foreign items are not found.
type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*model.CartItem, error)
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}
