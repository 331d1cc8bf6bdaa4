package dto

import "time"

// CheckoutRequest is the payment form plus the chosen delivery option.
type CheckoutRequest struct {
	PaymentForm
	DeliveryOption string `json:"deliveryOption"`
}

// OrderItemResponse is a purchased line.
type OrderItemResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// OrderResponse describes a placed order.
type OrderResponse struct {
	Number         string              `json:"number"`
	Status         string              `json:"status"`
	DeliveryOption string              `json:"deliveryOption"`
	Subtotal       string              `json:"subtotal"`
	Tax            string              `json:"tax"`
	DeliveryFee    string              `json:"deliveryFee"`
	Total          string              `json:"total"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// CheckoutResponse is returned when an order has been placed.
type CheckoutResponse struct {
	OrderNumber string `json:"orderNumber"`
	OrderResponse
}
