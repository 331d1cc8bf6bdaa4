package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is a placed purchase with its priced totals.
type Order struct {
	ID             int64
	Number         string
	UserID         int64
	Status         OrderStatus
	DeliveryOption string
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	DeliveryFee    decimal.Decimal
	Total          decimal.Decimal
	Items          []OrderItem
	CreatedAt      time.Time
}

// OrderItem snapshots a product at the time of purchase.
// CartItemID names the cart line it was priced from and is not stored.
type OrderItem struct {
	ID         int64
	OrderID    int64
	CartItemID int64
	ProductID  int64
	Name       string
	Quantity   int
	Price      decimal.Decimal
}
