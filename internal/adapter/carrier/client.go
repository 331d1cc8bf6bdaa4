package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/stockease/internal/domain/model"
)

const defaultRetryAfter = 5 * time.Second

// ErrShipmentNotRegistered indicates the carrier doesn't know the tracking number yet.
var ErrShipmentNotRegistered = errors.New("shipment not registered")

// TooManyRequestsError represents rate limiting signal from the carrier.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes shipment lookups against the carrier.
type Client interface {
	Fetch(ctx context.Context, trackingNumber string) (*model.Shipment, error)
}

// HTTPClient implements Client via the carrier HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type shipmentResponse struct {
	TrackingNumber string `json:"trackingNumber"`
	Status         string `json:"status"`
}

// NewHTTPClient creates carrier client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse carrier url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("carrier url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch asks the carrier for the current status of a shipment.
// The returned status is upper-cased but otherwise passed through, known or not.
func (c *HTTPClient) Fetch(ctx context.Context, trackingNumber string) (*model.Shipment, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/shipments/", url.PathEscape(trackingNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data shipmentResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, fmt.Errorf("decode shipment: %w", err)
		}
		if data.TrackingNumber == "" {
			data.TrackingNumber = trackingNumber
		}
		return &model.Shipment{
			TrackingNumber: data.TrackingNumber,
			Status:         model.DeliveryStatus(strings.ToUpper(strings.TrimSpace(data.Status))),
		}, nil
	case http.StatusNoContent, http.StatusNotFound:
		return nil, ErrShipmentNotRegistered
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("carrier request failed",
			slog.String("tracking", trackingNumber),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("carrier error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
		return 0
	}
	return defaultRetryAfter
}
