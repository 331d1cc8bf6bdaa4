package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/pkg/payment"
	"github.com/polkiloo/stockease/internal/pkg/pricing"
	"github.com/polkiloo/stockease/internal/server/http/handlers"
	"github.com/polkiloo/stockease/internal/usecase"
	"github.com/polkiloo/stockease/internal/worker"
)

var (
	_ handlers.StorefrontFacade = (*StorefrontFacade)(nil)
	_ worker.TrackingFacade     = (*StorefrontFacade)(nil)
)

// ShipmentProvider looks shipments up at the carrier.
type ShipmentProvider interface {
	Fetch(ctx context.Context, trackingNumber string) (*model.Shipment, error)
}

// FacadeParams lists the use cases the storefront facade aggregates.
type FacadeParams struct {
	fx.In

	Auth       *usecase.AuthUseCase
	Catalog    *usecase.CatalogUseCase
	Cart       *usecase.CartUseCase
	Checkout   *usecase.CheckoutUseCase
	Orders     *usecase.OrderUseCase
	Deliveries *usecase.DeliveryUseCase
	Payment    *payment.Validator
	Options    *pricing.Catalog
	Carrier    ShipmentProvider
}

// StorefrontFacade is the single entry point used by the HTTP layer and the tracker.
type StorefrontFacade struct {
	auth       *usecase.AuthUseCase
	catalog    *usecase.CatalogUseCase
	cart       *usecase.CartUseCase
	checkout   *usecase.CheckoutUseCase
	orders     *usecase.OrderUseCase
	deliveries *usecase.DeliveryUseCase
	payment    *payment.Validator
	options    *pricing.Catalog
	carrier    ShipmentProvider
}

func NewStorefrontFacade(p FacadeParams) *StorefrontFacade {
	return &StorefrontFacade{
		auth:       p.Auth,
		catalog:    p.Catalog,
		cart:       p.Cart,
		checkout:   p.Checkout,
		orders:     p.Orders,
		deliveries: p.Deliveries,
		payment:    p.Payment,
		options:    p.Options,
		carrier:    p.Carrier,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, reg model.Registration) (*model.Session, error) {
	return f.auth.Register(ctx, reg)
}

func (f *StorefrontFacade) Login(ctx context.Context, email, password string) (*model.Session, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *StorefrontFacade) Logout(ctx context.Context, token string) error {
	return f.auth.Logout(ctx, token)
}

func (f *StorefrontFacade) Authorize(ctx context.Context, token string) (model.Claims, error) {
	return f.auth.Authorize(ctx, token)
}

func (f *StorefrontFacade) Me(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *StorefrontFacade) UpdateProfile(ctx context.Context, userID int64, upd model.ProfileUpdate) (*model.User, error) {
	return f.auth.UpdateProfile(ctx, userID, upd)
}

func (f *StorefrontFacade) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return f.catalog.List(ctx, filter)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, userID int64, product model.NewProduct) (*model.Product, error) {
	return f.catalog.Create(ctx, userID, product)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, userID, id int64, upd model.ProductUpdate) (*model.Product, error) {
	return f.catalog.Update(ctx, userID, id, upd)
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, userID, id int64) error {
	return f.catalog.Delete(ctx, userID, id)
}

func (f *StorefrontFacade) Bestsellers(ctx context.Context, limit int) ([]model.Product, error) {
	return f.catalog.Bestsellers(ctx, limit)
}

func (f *StorefrontFacade) Cart(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return f.cart.Items(ctx, userID)
}

func (f *StorefrontFacade) CartSummary(ctx context.Context, userID int64, option string) (pricing.Summary, error) {
	return f.cart.Summary(ctx, userID, option)
}

func (f *StorefrontFacade) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	return f.cart.Add(ctx, userID, productID, quantity)
}

func (f *StorefrontFacade) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*model.CartItem, error) {
	return f.cart.Update(ctx, userID, itemID, quantity)
}

func (f *StorefrontFacade) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	return f.cart.Remove(ctx, userID, itemID)
}

func (f *StorefrontFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.cart.Clear(ctx, userID)
}

func (f *StorefrontFacade) DeliveryOptions() []pricing.DeliveryOption {
	return f.options.Options()
}

// PreviewPayment formats a partially typed payment form and reports the problems visible so far.
func (f *StorefrontFacade) PreviewPayment(form payment.Form) payment.Preview {
	return f.payment.Preview(form)
}

func (f *StorefrontFacade) Checkout(ctx context.Context, userID int64, req usecase.CheckoutRequest) (*model.Order, error) {
	return f.checkout.Checkout(ctx, userID, req)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) Order(ctx context.Context, userID int64, number string) (*model.Order, error) {
	return f.orders.GetByNumber(ctx, userID, number)
}

func (f *StorefrontFacade) TrackOrder(ctx context.Context, userID int64, number string) (*usecase.TrackedDelivery, error) {
	return f.deliveries.ByOrderNumber(ctx, userID, number)
}

func (f *StorefrontFacade) TrackShipment(ctx context.Context, trackingNumber string) (*usecase.TrackedDelivery, error) {
	return f.deliveries.ByTrackingNumber(ctx, trackingNumber)
}

func (f *StorefrontFacade) DeliveriesForSync(ctx context.Context, limit int) ([]model.Delivery, error) {
	return f.deliveries.SelectBatchForSync(ctx, limit)
}

func (f *StorefrontFacade) FetchShipment(ctx context.Context, trackingNumber string) (*model.Shipment, error) {
	return f.carrier.Fetch(ctx, trackingNumber)
}

func (f *StorefrontFacade) UpdateDeliveryStatus(ctx context.Context, deliveryID int64, status model.DeliveryStatus) error {
	return f.deliveries.UpdateStatus(ctx, deliveryID, status)
}
