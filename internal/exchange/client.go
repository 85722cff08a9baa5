package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/crucial707/expense-tracker/internal/metrics"
)

// ErrInvalidPair means the provider rejected the currency codes.
var ErrInvalidPair = errors.New("invalid currency pair")

// RateProvider returns the conversion rate between two currency codes.
// Handlers depend on this interface so tests can swap in a stub.
type RateProvider interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

// Client calls the v6.exchangerate-api.com pair endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Rate fetches the conversion rate for from -> to. A non-200 response maps to
// ErrInvalidPair (the provider answers 404 for unknown codes); transport
// failures and malformed bodies surface as plain errors.
func (c *Client) Rate(ctx context.Context, from, to string) (float64, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s", c.BaseURL, c.APIKey, from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	metrics.ExchangeInFlight.Inc()
	defer metrics.ExchangeInFlight.Dec()

	resp, err := c.HTTP.Do(req)
	if err != nil {
		metrics.RecordExchange("error")
		return 0, fmt.Errorf("exchange request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordExchange("invalid_pair")
		return 0, ErrInvalidPair
	}

	var body struct {
		ConversionRate *float64 `json:"conversion_rate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.RecordExchange("error")
		return 0, fmt.Errorf("exchange response: %w", err)
	}
	if body.ConversionRate == nil {
		metrics.RecordExchange("error")
		return 0, fmt.Errorf("exchange response: missing conversion_rate")
	}

	metrics.RecordExchange("ok")
	return *body.ConversionRate, nil
}
