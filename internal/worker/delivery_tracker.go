package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/stockease/internal/adapter/carrier"
	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/pkg/tracking"
)

// TrackingFacade exposes the subset of application functionality required by the tracker.
type TrackingFacade interface {
	DeliveriesForSync(ctx context.Context, limit int) ([]model.Delivery, error)
	FetchShipment(ctx context.Context, trackingNumber string) (*model.Shipment, error)
	UpdateDeliveryStatus(ctx context.Context, deliveryID int64, status model.DeliveryStatus) error
}

// DeliveryTracker polls the carrier and updates delivery statuses concurrently.
type DeliveryTracker struct {
	facade       TrackingFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	mu     sync.Mutex
	group  *errgroup.Group
	cancel context.CancelFunc
}

// NewDeliveryTracker constructs the tracker worker pool.
func NewDeliveryTracker(facade TrackingFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *DeliveryTracker {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &DeliveryTracker{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
	}
}

// Start launches the dispatcher and the workers. Calling Start twice without Stop is a no-op.
func (t *DeliveryTracker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.group != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(runCtx)
	jobs := make(chan model.Delivery, t.batchSize)

	for i := 0; i < t.workers; i++ {
		group.Go(func() error {
			t.worker(groupCtx, jobs)
			return nil
		})
	}
	group.Go(func() error {
		t.dispatch(groupCtx, jobs)
		return nil
	})

	t.group = group
	t.cancel = cancel
}

// Stop cancels polling and waits for in-flight deliveries to finish.
func (t *DeliveryTracker) Stop() {
	t.mu.Lock()
	group, cancel := t.group, t.cancel
	t.group, t.cancel = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	_ = group.Wait()
}

func (t *DeliveryTracker) dispatch(ctx context.Context, jobs chan<- model.Delivery) {
	defer close(jobs)
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.fetchAndDispatch(ctx, jobs)
		}
	}
}

func (t *DeliveryTracker) fetchAndDispatch(ctx context.Context, jobs chan<- model.Delivery) {
	deliveries, err := t.facade.DeliveriesForSync(ctx, t.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			t.logger.Error("fetch deliveries for sync failed", slog.String("error", err.Error()))
		}
		return
	}
	for _, d := range deliveries {
		select {
		case <-ctx.Done():
			return
		case jobs <- d:
		}
	}
}

func (t *DeliveryTracker) worker(ctx context.Context, jobs <-chan model.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-jobs:
			if !ok {
				return
			}
			t.handleDelivery(ctx, d)
		}
	}
}

func (t *DeliveryTracker) handleDelivery(ctx context.Context, d model.Delivery) {
	shipment, err := t.facade.FetchShipment(ctx, d.TrackingNumber)
	if err != nil {
		var limited carrier.TooManyRequestsError
		switch {
		case errors.As(err, &limited):
			t.logger.Warn("carrier rate limited", slog.Duration("retry_after", limited.RetryAfter))
			sleep(ctx, limited.RetryAfter)
		case errors.Is(err, carrier.ErrShipmentNotRegistered):
			t.logger.Debug("shipment not registered yet", slog.String("tracking", d.TrackingNumber))
		case ctx.Err() != nil:
		default:
			t.logger.Error("carrier fetch failed", slog.String("tracking", d.TrackingNumber), slog.String("error", err.Error()))
		}
		return
	}

	if !shipment.Status.Known() {
		t.logger.Warn("unrecognized carrier status",
			slog.String("tracking", d.TrackingNumber),
			slog.String("status", string(shipment.Status)),
		)
		return
	}
	if shipment.Status == d.Status {
		return
	}
	if !advances(d.Status, shipment.Status) {
		t.logger.Warn("carrier status moved backwards",
			slog.String("tracking", d.TrackingNumber),
			slog.String("stored", string(d.Status)),
			slog.String("carrier", string(shipment.Status)),
		)
		return
	}

	if err := t.facade.UpdateDeliveryStatus(ctx, d.ID, shipment.Status); err != nil {
		t.logger.Error("update delivery status failed", slog.String("tracking", d.TrackingNumber), slog.String("error", err.Error()))
		return
	}
	t.logger.Info("delivery status changed",
		slog.String("tracking", d.TrackingNumber),
		slog.String("from", string(d.Status)),
		slog.String("to", string(shipment.Status)),
	)
}

// advances reports whether a carrier status is progress over the stored one.
// FAILED applies from any status; timeline statuses only move forward.
func advances(from, to model.DeliveryStatus) bool {
	if to == model.DeliveryStatusFailed {
		return from != to
	}
	return tracking.StatusIndex(string(to)) > tracking.StatusIndex(string(from))
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
