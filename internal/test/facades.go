package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/stockease/internal/domain/model"
	pkgAuth "github.com/polkiloo/stockease/internal/pkg/auth"
)

// TokenAuthorizerStub accepts every token for UserID unless Err is set.
type TokenAuthorizerStub struct {
	UserID int64
	Err    error
}

// Authorize returns configured claims or error.
func (s TokenAuthorizerStub) Authorize(ctx context.Context, token string) (model.Claims, error) {
	if s.Err != nil {
		return model.Claims{}, s.Err
	}
	if token == "" {
		return model.Claims{}, pkgAuth.ErrInvalidToken
	}
	return model.Claims{UserID: s.UserID, TokenID: "tid-" + token}, nil
}

// TrackingFacadeStub mimics the tracker's view of the storefront facade.
type TrackingFacadeStub struct {
	Batches  [][]model.Delivery
	ListFn   func(context.Context, int) ([]model.Delivery, error)
	FetchFn  func(context.Context, string) (*model.Shipment, error)
	UpdateFn func(context.Context, int64, model.DeliveryStatus) error

	mu        sync.Mutex
	updates   []DeliveryUpdateCall
	listCalls int32
}

// DeliveriesForSync returns configured batches in order, then nothing.
func (s *TrackingFacadeStub) DeliveriesForSync(ctx context.Context, limit int) ([]model.Delivery, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.listCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(5 * time.Millisecond)
	return nil, nil
}

// FetchShipment returns the configured shipment or an in-transit one.
func (s *TrackingFacadeStub) FetchShipment(ctx context.Context, trackingNumber string) (*model.Shipment, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, trackingNumber)
	}
	return &model.Shipment{TrackingNumber: trackingNumber, Status: model.DeliveryStatusInTransit}, nil
}

// UpdateDeliveryStatus records the call before delegating to UpdateFn.
func (s *TrackingFacadeStub) UpdateDeliveryStatus(ctx context.Context, deliveryID int64, status model.DeliveryStatus) error {
	s.mu.Lock()
	s.updates = append(s.updates, DeliveryUpdateCall{DeliveryID: deliveryID, Status: status})
	s.mu.Unlock()
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, deliveryID, status)
	}
	return nil
}

// UpdateCalls returns a snapshot of recorded updates.
func (s *TrackingFacadeStub) UpdateCalls() []DeliveryUpdateCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DeliveryUpdateCall, len(s.updates))
	copy(out, s.updates)
	return out
}

// ShipmentProviderStub answers carrier lookups for tests.
type ShipmentProviderStub struct {
	FetchFn  func(context.Context, string) (*model.Shipment, error)
	Shipment *model.Shipment
	Err      error
}

// Fetch returns configured response or a pending shipment.
func (s ShipmentProviderStub) Fetch(ctx context.Context, trackingNumber string) (*model.Shipment, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, trackingNumber)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Shipment != nil {
		return s.Shipment, nil
	}
	return &model.Shipment{TrackingNumber: trackingNumber, Status: model.DeliveryStatusPending}, nil
}
