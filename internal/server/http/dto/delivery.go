package dto

import (
	"time"

	"github.com/polkiloo/stockease/internal/pkg/tracking"
)

// DeliveryResponse is a delivery with its projected progress timeline.
type DeliveryResponse struct {
	OrderNumber    string            `json:"orderNumber"`
	TrackingNumber string            `json:"trackingNumber"`
	Status         string            `json:"status"`
	Address        string            `json:"address"`
	EstimatedAt    time.Time         `json:"estimatedDelivery"`
	DeliveredAt    *time.Time        `json:"deliveredAt,omitempty"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	Timeline       tracking.Timeline `json:"timeline"`
}
