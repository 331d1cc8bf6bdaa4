package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/domain/repository"
)

// Bestseller list sizes when the caller omits or overshoots the limit.
const (
	DefaultBestsellers = 10
	MaxBestsellers     = 50
)

// CatalogUseCase exposes product browsing and publishing.
type CatalogUseCase struct {
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, users repository.UserRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, users: users}
}

func (u *CatalogUseCase) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return u.products.List(ctx, filter)
}

func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, domainErrors.ErrNotFound
	}
	return u.products.GetByID(ctx, id)
}

// Bestsellers ranks products by units sold.
func (u *CatalogUseCase) Bestsellers(ctx context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = DefaultBestsellers
	}
	if limit > MaxBestsellers {
		limit = MaxBestsellers
	}
	return u.products.Bestsellers(ctx, limit)
}

func (u *CatalogUseCase) seller(ctx context.Context, userID int64) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !usr.Role.CanSell() {
		return nil, domainErrors.ErrForbidden
	}
	return usr, nil
}

// owned loads a product the user may change. Admins may change any product.
func (u *CatalogUseCase) owned(ctx context.Context, userID, id int64) (*model.Product, error) {
	usr, err := u.seller(ctx, userID)
	if err != nil {
		return nil, err
	}
	product, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr.Role != model.RoleAdmin && product.SellerID != usr.ID {
		return nil, domainErrors.ErrForbidden
	}
	return product, nil
}

// Create publishes a product on behalf of a seller or admin.
func (u *CatalogUseCase) Create(ctx context.Context, userID int64, product model.NewProduct) (*model.Product, error) {
	usr, err := u.seller(ctx, userID)
	if err != nil {
		return nil, err
	}
	product.SellerID = usr.ID

	product.Name = strings.TrimSpace(product.Name)
	product.Category = strings.TrimSpace(product.Category)
	product.Description = strings.TrimSpace(product.Description)
	if product.Name == "" || !product.Price.IsPositive() {
		return nil, domainErrors.ErrInvalidProduct
	}
	product.Price = product.Price.Round(2)

	return u.products.Create(ctx, product)
}

// Update changes the given fields of a product the user published.
func (u *CatalogUseCase) Update(ctx context.Context, userID, id int64, upd model.ProductUpdate) (*model.Product, error) {
	product, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	changed := *product
	if upd.Name != nil {
		changed.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Description != nil {
		changed.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Category != nil {
		changed.Category = strings.TrimSpace(*upd.Category)
	}
	if upd.Price != nil {
		changed.Price = *upd.Price
	}
	if changed.Name == "" || !changed.Price.IsPositive() {
		return nil, domainErrors.ErrInvalidProduct
	}
	changed.Price = changed.Price.Round(2)

	return u.products.Update(ctx, changed)
}

// Delete removes a product the user published. Placed orders keep their snapshot.
func (u *CatalogUseCase) Delete(ctx context.Context, userID, id int64) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	return u.products.Delete(ctx, id)
}
