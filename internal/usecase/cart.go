package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/domain/repository"
	"github.com/polkiloo/stockease/internal/pkg/pricing"
)

// CartUseCase manages a user's cart and prices it.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	catalog  *pricing.Catalog
	calc     *pricing.Calculator
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(
	carts repository.CartRepository,
	products repository.ProductRepository,
	catalog *pricing.Catalog,
	calc *pricing.Calculator,
) *CartUseCase {
	return &CartUseCase{carts: carts, products: products, catalog: catalog, calc: calc}
}

func (u *CartUseCase) Items(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return u.carts.ListByUser(ctx, userID)
}

// Add puts quantity units of a product into the cart. Zero quantity means one.
func (u *CartUseCase) Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	if _, err := u.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return u.carts.Add(ctx, userID, productID, quantity)
}

// Update sets the quantity of a cart line; zero removes it and returns a nil item.
func (u *CartUseCase) Update(ctx context.Context, userID, itemID int64, quantity int) (*model.CartItem, error) {
	switch {
	case quantity < 0:
		return nil, domainErrors.ErrInvalidQuantity
	case quantity == 0:
		return nil, u.carts.Remove(ctx, userID, itemID)
	}
	return u.carts.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (u *CartUseCase) Remove(ctx context.Context, userID, itemID int64) error {
	return u.carts.Remove(ctx, userID, itemID)
}

func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	return u.carts.Clear(ctx, userID)
}

// Summary prices the current cart with the chosen delivery option.
func (u *CartUseCase) Summary(ctx context.Context, userID int64, optionCode string) (pricing.Summary, error) {
	option, ok := u.catalog.Lookup(optionCode)
	if !ok {
		return pricing.Summary{}, domainErrors.ErrUnknownDeliveryOption
	}
	items, err := u.carts.ListByUser(ctx, userID)
	if err != nil {
		return pricing.Summary{}, err
	}
	return u.calc.Summarize(cartLines(items), option), nil
}

func cartLines(items []model.CartItem) []pricing.Line {
	lines := make([]pricing.Line, len(items))
	for i, it := range items {
		lines[i] = pricing.Line{Price: it.Product.Price, Quantity: it.Quantity}
	}
	return lines
}
