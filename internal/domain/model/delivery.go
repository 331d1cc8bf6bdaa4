package model

import "time"

// DeliveryStatus is the coarse carrier status of a delivery.
type DeliveryStatus string

const (
	DeliveryStatusPending        DeliveryStatus = "PENDING"
	DeliveryStatusInTransit      DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusOutForDelivery DeliveryStatus = "OUT_FOR_DELIVERY"
	DeliveryStatusDelivered      DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed         DeliveryStatus = "FAILED"
)

// Known reports whether s is one of the defined statuses.
func (s DeliveryStatus) Known() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusOutForDelivery,
		DeliveryStatusDelivered, DeliveryStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further carrier updates are expected.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusFailed
}

// OrderStatus returns the order status implied by a delivery status.
// The second result is false when the order status should not change.
func (s DeliveryStatus) OrderStatus() (OrderStatus, bool) {
	switch s {
	case DeliveryStatusInTransit, DeliveryStatusOutForDelivery:
		return OrderStatusShipped, true
	case DeliveryStatusDelivered:
		return OrderStatusDelivered, true
	case DeliveryStatusFailed:
		return OrderStatusCancelled, true
	}
	return "", false
}

// Delivery tracks shipment of a single order.
type Delivery struct {
	ID             int64
	OrderID        int64
	OrderNumber    string
	TrackingNumber string
	Status         DeliveryStatus
	Address        string
	EstimatedAt    time.Time
	DeliveredAt    *time.Time
	SyncedAt       *time.Time
	UpdatedAt      time.Time
}

// Shipment is the carrier's view of a delivery.
type Shipment struct {
	TrackingNumber string
	Status         DeliveryStatus
}
