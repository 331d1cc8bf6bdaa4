package dto

import "time"

// AddCartItemRequest adds a product to the cart.
type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartItemRequest sets the quantity of a cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is one cart line.
type CartItemResponse struct {
	ID        int64           `json:"id"`
	Product   ProductResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal string          `json:"lineTotal"`
	AddedAt   time.Time       `json:"addedAt"`
}

// CartSummaryResponse is the priced cart.
type CartSummaryResponse struct {
	DeliveryOption string `json:"deliveryOption"`
	DeliveryLabel  string `json:"deliveryLabel"`
	ItemCount      int    `json:"itemCount"`
	Subtotal       string `json:"subtotal"`
	Tax            string `json:"tax"`
	DeliveryFee    string `json:"deliveryFee"`
	Total          string `json:"total"`
}

// DeliveryOptionResponse is one selectable delivery method.
type DeliveryOptionResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Fee   string `json:"fee"`
}
