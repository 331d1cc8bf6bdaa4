package repository

import (
	"context"

	"github.com/polkiloo/stockease/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Place stores order, its items and delivery and consumes the cart lines the items were
	// priced from, atomically. It fails with ErrCartChanged when any of those lines was removed
	// or changed quantity since it was read.
	Place(ctx context.Context, order *model.Order, delivery *model.Delivery) error
	GetByNumber(ctx context.Context, userID int64, number string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
}

// DeliveryRepository describes persistence operations with deliveries.
type DeliveryRepository interface {
	GetByOrderNumber(ctx context.Context, userID int64, number string) (*model.Delivery, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*model.Delivery, error)
	SelectBatchForSync(ctx context.Context, limit int) ([]model.Delivery, error)
	UpdateStatus(ctx context.Context, deliveryID int64, status model.DeliveryStatus) error
}
