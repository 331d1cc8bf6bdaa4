package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/domain/repository"
	"github.com/polkiloo/stockease/internal/pkg/payment"
	"github.com/polkiloo/stockease/internal/pkg/pricing"
)

const (
	trackingPrefix   = "TRK"
	deliveryLeadTime = 5 * 24 * time.Hour
	orderNumberLen   = 8
)

// CheckoutRequest is the submitted payment form plus the chosen delivery option.
type CheckoutRequest struct {
	Form           payment.Form
	DeliveryOption string
}

// CheckoutUseCase turns a cart into a placed order.
type CheckoutUseCase struct {
	carts     repository.CartRepository
	orders    repository.OrderRepository
	validator *payment.Validator
	catalog   *pricing.Catalog
	calc      *pricing.Calculator
	logger    *slog.Logger

	now       func() time.Time
	newNumber func() string
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	validator *payment.Validator,
	catalog *pricing.Catalog,
	calc *pricing.Calculator,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		carts:     carts,
		orders:    orders,
		validator: validator,
		catalog:   catalog,
		calc:      calc,
		logger:    logger,
		now:       time.Now,
		newNumber: newOrderNumber,
	}
}

func newOrderNumber() string {
	return strings.ToUpper(uuid.NewString()[:orderNumberLen])
}

// Checkout validates the payment form, prices the cart and places the order.
// Card details are not retained past validation.
func (u *CheckoutUseCase) Checkout(ctx context.Context, userID int64, req CheckoutRequest) (*model.Order, error) {
	if errs := u.validator.Validate(req.Form); errs != nil {
		return nil, errs
	}

	option, ok := u.catalog.Lookup(req.DeliveryOption)
	if !ok {
		return nil, domainErrors.ErrUnknownDeliveryOption
	}

	items, err := u.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	summary := u.calc.Summarize(cartLines(items), option).Rounded()
	number := u.newNumber()

	order := &model.Order{
		Number:         number,
		UserID:         userID,
		Status:         model.OrderStatusPending,
		DeliveryOption: option.Code,
		Subtotal:       summary.Subtotal,
		Tax:            summary.Tax,
		DeliveryFee:    summary.DeliveryFee,
		Total:          summary.Total,
		Items:          make([]model.OrderItem, len(items)),
	}
	for i, it := range items {
		order.Items[i] = model.OrderItem{
			CartItemID: it.ID,
			ProductID:  it.Product.ID,
			Name:       it.Product.Name,
			Quantity:   it.Quantity,
			Price:      it.Product.Price,
		}
	}

	delivery := &model.Delivery{
		TrackingNumber: trackingPrefix + number,
		Status:         model.DeliveryStatusPending,
		Address:        strings.TrimSpace(req.Form.Address),
		EstimatedAt:    u.now().Add(deliveryLeadTime),
	}

	if err := u.orders.Place(ctx, order, delivery); err != nil {
		return nil, err
	}

	u.logger.Info("order placed",
		slog.String("order", order.Number),
		slog.Int64("user_id", userID),
		slog.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}
