package model

import "time"

// CartItem is one product line in a user's cart.
type CartItem struct {
	ID       int64
	UserID   int64
	Product  Product
	Quantity int
	AddedAt  time.Time
}
