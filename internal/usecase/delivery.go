package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/domain/repository"
	"github.com/polkiloo/stockease/internal/pkg/tracking"
)

// TrackedDelivery is a delivery together with its projected timeline.
type TrackedDelivery struct {
	Delivery model.Delivery
	Timeline tracking.Timeline
}

// DeliveryUseCase exposes delivery tracking and carrier synchronisation.
type DeliveryUseCase struct {
	deliveries repository.DeliveryRepository
	logger     *slog.Logger
}

// NewDeliveryUseCase constructs DeliveryUseCase.
func NewDeliveryUseCase(deliveries repository.DeliveryRepository, logger *slog.Logger) *DeliveryUseCase {
	return &DeliveryUseCase{deliveries: deliveries, logger: logger}
}

// ByOrderNumber tracks a delivery of the user's own order.
func (u *DeliveryUseCase) ByOrderNumber(ctx context.Context, userID int64, number string) (*TrackedDelivery, error) {
	d, err := u.deliveries.GetByOrderNumber(ctx, userID, number)
	if err != nil {
		return nil, err
	}
	return u.track(d), nil
}

// ByTrackingNumber tracks any delivery by its public tracking number.
func (u *DeliveryUseCase) ByTrackingNumber(ctx context.Context, trackingNumber string) (*TrackedDelivery, error) {
	d, err := u.deliveries.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	return u.track(d), nil
}

func (u *DeliveryUseCase) track(d *model.Delivery) *TrackedDelivery {
	timeline := tracking.Project(string(d.Status))
	if !timeline.Recognized {
		u.logger.Warn("unrecognized delivery status",
			slog.String("tracking", d.TrackingNumber),
			slog.String("status", string(d.Status)),
		)
	}
	return &TrackedDelivery{Delivery: *d, Timeline: timeline}
}

// SelectBatchForSync claims deliveries awaiting a carrier update.
func (u *DeliveryUseCase) SelectBatchForSync(ctx context.Context, limit int) ([]model.Delivery, error) {
	return u.deliveries.SelectBatchForSync(ctx, limit)
}

// UpdateStatus stores a carrier status and updates the owning order.
func (u *DeliveryUseCase) UpdateStatus(ctx context.Context, deliveryID int64, status model.DeliveryStatus) error {
	return u.deliveries.UpdateStatus(ctx, deliveryID, status)
}
