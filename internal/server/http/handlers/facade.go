package handlers

import (
	"context"

	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/pkg/payment"
	"github.com/polkiloo/stockease/internal/pkg/pricing"
	"github.com/polkiloo/stockease/internal/server/http/middleware"
	"github.com/polkiloo/stockease/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, reg model.Registration) (*model.Session, error)
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, upd model.ProfileUpdate) (*model.User, error)
}

// CatalogFacade exposes product listing and publishing.
type CatalogFacade interface {
	Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Bestsellers(ctx context.Context, limit int) ([]model.Product, error)
	CreateProduct(ctx context.Context, userID int64, product model.NewProduct) (*model.Product, error)
	UpdateProduct(ctx context.Context, userID, id int64, upd model.ProductUpdate) (*model.Product, error)
	DeleteProduct(ctx context.Context, userID, id int64) error
}

// CartFacade manages the signed-in user's cart.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) ([]model.CartItem, error)
	CartSummary(ctx context.Context, userID int64, option string) (pricing.Summary, error)
	AddToCart(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error)
	UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*model.CartItem, error)
	RemoveCartItem(ctx context.Context, userID, itemID int64) error
	ClearCart(ctx context.Context, userID int64) error
}

// OrderFacade encapsulates checkout and order history.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64, req usecase.CheckoutRequest) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID int64, number string) (*model.Order, error)
}

// DeliveryFacade provides delivery options and tracking.
type DeliveryFacade interface {
	DeliveryOptions() []pricing.DeliveryOption
	TrackOrder(ctx context.Context, userID int64, number string) (*usecase.TrackedDelivery, error)
	TrackShipment(ctx context.Context, trackingNumber string) (*usecase.TrackedDelivery, error)
}

// PaymentFacade previews the payment form while it is being typed.
type PaymentFacade interface {
	PreviewPayment(form payment.Form) payment.Preview
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	middleware.TokenAuthorizer
	AuthFacade
	CatalogFacade
	CartFacade
	OrderFacade
	DeliveryFacade
	PaymentFacade
}
