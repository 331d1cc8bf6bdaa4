// Package facadestub provides a configurable storefront facade for HTTP tests.
package facadestub

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/pkg/payment"
	"github.com/polkiloo/stockease/internal/pkg/pricing"
	"github.com/polkiloo/stockease/internal/pkg/tracking"
	testhelpers "github.com/polkiloo/stockease/internal/test"
	"github.com/polkiloo/stockease/internal/usecase"
)

// Storefront delegates to the configured functions and falls back to
// canned happy-path answers.
type Storefront struct {
	testhelpers.TokenAuthorizerStub

	RegisterFn func(context.Context, model.Registration) (*model.Session, error)
	LoginFn    func(context.Context, string, string) (*model.Session, error)
	LogoutFn   func(context.Context, string) error
	MeFn       func(context.Context, int64) (*model.User, error)
	ProfileFn  func(context.Context, int64, model.ProfileUpdate) (*model.User, error)

	ProductsFn      func(context.Context, model.ProductFilter) ([]model.Product, error)
	ProductFn       func(context.Context, int64) (*model.Product, error)
	CreateProductFn func(context.Context, int64, model.NewProduct) (*model.Product, error)
	UpdateProductFn func(context.Context, int64, int64, model.ProductUpdate) (*model.Product, error)
	DeleteProductFn func(context.Context, int64, int64) error
	BestsellersFn   func(context.Context, int) ([]model.Product, error)

	CartFn       func(context.Context, int64) ([]model.CartItem, error)
	SummaryFn    func(context.Context, int64, string) (pricing.Summary, error)
	AddFn        func(context.Context, int64, int64, int) (*model.CartItem, error)
	UpdateItemFn func(context.Context, int64, int64, int) (*model.CartItem, error)
	RemoveItemFn func(context.Context, int64, int64) error
	ClearCartFn  func(context.Context, int64) error

	CheckoutFn func(context.Context, int64, usecase.CheckoutRequest) (*model.Order, error)
	OrdersFn   func(context.Context, int64) ([]model.Order, error)
	OrderFn    func(context.Context, int64, string) (*model.Order, error)

	TrackOrderFn    func(context.Context, int64, string) (*usecase.TrackedDelivery, error)
	TrackShipmentFn func(context.Context, string) (*usecase.TrackedDelivery, error)

	Options   []pricing.DeliveryOption
	Validator *payment.Validator
}

func (s Storefront) Register(ctx context.Context, reg model.Registration) (*model.Session, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return &model.Session{Token: "token", UserID: 1}, nil
}

func (s Storefront) Login(ctx context.Context, email, password string) (*model.Session, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.Session{Token: "token", UserID: 1}, nil
}

func (s Storefront) Logout(ctx context.Context, token string) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, token)
	}
	return nil
}

func (s Storefront) Me(ctx context.Context, userID int64) (*model.User, error) {
	if s.MeFn != nil {
		return s.MeFn(ctx, userID)
	}
	return &model.User{ID: userID, Name: "Ada", Email: "ada@example.com", Role: model.RoleCustomer}, nil
}

func (s Storefront) UpdateProfile(ctx context.Context, userID int64, upd model.ProfileUpdate) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID, upd)
	}
	u := &model.User{ID: userID, Name: "Ada", Email: "ada@example.com", Role: model.RoleCustomer}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Address != nil {
		u.Address = *upd.Address
	}
	return u, nil
}

func (s Storefront) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return []model.Product{SampleProduct()}, nil
}

func (s Storefront) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	p := SampleProduct()
	if id != p.ID {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (s Storefront) CreateProduct(ctx context.Context, userID int64, product model.NewProduct) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, userID, product)
	}
	return &model.Product{ID: 2, Name: product.Name, Category: product.Category, Price: product.Price}, nil
}

func (s Storefront) UpdateProduct(ctx context.Context, userID, id int64, upd model.ProductUpdate) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, userID, id, upd)
	}
	p, err := s.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	return p, nil
}

func (s Storefront) DeleteProduct(ctx context.Context, userID, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, userID, id)
	}
	return nil
}

func (s Storefront) Bestsellers(ctx context.Context, limit int) ([]model.Product, error) {
	if s.BestsellersFn != nil {
		return s.BestsellersFn(ctx, limit)
	}
	return []model.Product{SampleProduct()}, nil
}

func (s Storefront) Cart(ctx context.Context, userID int64) ([]model.CartItem, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return []model.CartItem{{ID: 1, UserID: userID, Product: SampleProduct(), Quantity: 2}}, nil
}

func (s Storefront) CartSummary(ctx context.Context, userID int64, option string) (pricing.Summary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, userID, option)
	}
	opt, ok := pricing.DefaultCatalog().Lookup(option)
	if !ok {
		return pricing.Summary{}, domainErrors.ErrUnknownDeliveryOption
	}
	calc := pricing.NewCalculator(pricing.DefaultTaxRate)
	p := SampleProduct()
	return calc.Summarize([]pricing.Line{{Price: p.Price, Quantity: 2}}, opt).Rounded(), nil
}

func (s Storefront) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID, quantity)
	}
	p := SampleProduct()
	p.ID = productID
	return &model.CartItem{ID: 1, UserID: userID, Product: p, Quantity: quantity}, nil
}

func (s Storefront) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*model.CartItem, error) {
	if s.UpdateItemFn != nil {
		return s.UpdateItemFn(ctx, userID, itemID, quantity)
	}
	if quantity == 0 {
		return nil, nil
	}
	return &model.CartItem{ID: itemID, UserID: userID, Product: SampleProduct(), Quantity: quantity}, nil
}

func (s Storefront) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	if s.RemoveItemFn != nil {
		return s.RemoveItemFn(ctx, userID, itemID)
	}
	return nil
}

func (s Storefront) ClearCart(ctx context.Context, userID int64) error {
	if s.ClearCartFn != nil {
		return s.ClearCartFn(ctx, userID)
	}
	return nil
}

func (s Storefront) DeliveryOptions() []pricing.DeliveryOption {
	if s.Options != nil {
		return s.Options
	}
	return pricing.DefaultCatalog().Options()
}

func (s Storefront) PreviewPayment(form payment.Form) payment.Preview {
	v := s.Validator
	if v == nil {
		v = payment.NewValidator()
	}
	return v.Preview(form)
}

func (s Storefront) Checkout(ctx context.Context, userID int64, req usecase.CheckoutRequest) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, req)
	}
	return &model.Order{Number: "ABCD1234", UserID: userID, Status: model.OrderStatusPending, DeliveryOption: req.DeliveryOption}, nil
}

func (s Storefront) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{Number: "ABCD1234", UserID: userID, Status: model.OrderStatusPending}}, nil
}

func (s Storefront) Order(ctx context.Context, userID int64, number string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, number)
	}
	return &model.Order{Number: number, UserID: userID, Status: model.OrderStatusPending}, nil
}

func (s Storefront) TrackOrder(ctx context.Context, userID int64, number string) (*usecase.TrackedDelivery, error) {
	if s.TrackOrderFn != nil {
		return s.TrackOrderFn(ctx, userID, number)
	}
	return SampleTrackedDelivery(number), nil
}

func (s Storefront) TrackShipment(ctx context.Context, trackingNumber string) (*usecase.TrackedDelivery, error) {
	if s.TrackShipmentFn != nil {
		return s.TrackShipmentFn(ctx, trackingNumber)
	}
	return SampleTrackedDelivery("ABCD1234"), nil
}

// SampleProduct is the product the default answers refer to.
func SampleProduct() model.Product {
	return model.Product{ID: 1, Name: "Desk lamp", Category: "home", Price: decimal.RequireFromString("25.00")}
}

// SampleTrackedDelivery is an in-transit delivery of the given order.
func SampleTrackedDelivery(number string) *usecase.TrackedDelivery {
	d := model.Delivery{
		ID:             1,
		OrderNumber:    number,
		TrackingNumber: "TRK" + number,
		Status:         model.DeliveryStatusInTransit,
		Address:        "1 Main St",
	}
	return &usecase.TrackedDelivery{Delivery: d, Timeline: tracking.Project(string(d.Status))}
}
