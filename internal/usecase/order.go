package usecase

import (
	"context"

	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/domain/repository"
)

// OrderUseCase exposes a user's order history.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// ListByUser returns orders newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// GetByNumber returns the order with its items. Orders of other users are not found.
func (u *OrderUseCase) GetByNumber(ctx context.Context, userID int64, number string) (*model.Order, error) {
	return u.orders.GetByNumber(ctx, userID, number)
}
