package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/infrastructure/config"
	"github.com/loanforge/deal-service/internal/metrics"
)

// ConveyorClient calls the credit conveyor service over HTTP. It implements
// port.ScoringClient.
//
// The conveyor signals a business denial with 204 No Content; the client
// translates that into (nil, nil) so callers can distinguish denial from
// transport failure.
type ConveyorClient struct {
	config  config.ConveyorConfig
	client  *http.Client
	metrics *metrics.Metrics
}

// NewConveyorClient creates a conveyor client with the given configuration.
// If httpClient is nil, a default client with the configured timeout is used.
func NewConveyorClient(cfg config.ConveyorConfig, m *metrics.Metrics, httpClient *http.Client) *ConveyorClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}
	}
	return &ConveyorClient{config: cfg, client: httpClient, metrics: m}
}

// RequestOffers asks the conveyor for prescoring offers. A 204 response means
// the conveyor produced no offers and yields an empty slice.
func (c *ConveyorClient) RequestOffers(ctx context.Context, request model.LoanRequest) ([]model.Offer, error) {
	defer c.observe("offers", time.Now())
	body, status, err := c.postWithRetry(ctx, "/conveyor/offers", request)
	if err != nil {
		return nil, fmt.Errorf("conveyor offers request failed: %w", err)
	}
	if status == http.StatusNoContent {
		return nil, nil
	}

	var offers []model.Offer
	if err := json.Unmarshal(body, &offers); err != nil {
		return nil, fmt.Errorf("decode conveyor offers response: %w", err)
	}
	return offers, nil
}

// RequestCalculation asks the conveyor for a full credit calculation.
// A 204 response means the conveyor denied the application; the client
// returns (nil, nil) in that case.
func (c *ConveyorClient) RequestCalculation(ctx context.Context, data model.ScoringData) (*model.CalculationResult, error) {
	defer c.observe("calculation", time.Now())
	body, status, err := c.postWithRetry(ctx, "/conveyor/calculation", data)
	if err != nil {
		return nil, fmt.Errorf("conveyor calculation request failed: %w", err)
	}
	if status == http.StatusNoContent {
		return nil, nil
	}

	var result model.CalculationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode conveyor calculation response: %w", err)
	}
	return &result, nil
}

func (c *ConveyorClient) observe(endpoint string, start time.Time) {
	c.metrics.ConveyorRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// postWithRetry posts the payload with exponential backoff retry logic.
// Only transport errors and 5xx responses are retried; 204 and other
// statuses are final.
func (c *ConveyorClient) postWithRetry(ctx context.Context, path string, payload any) ([]byte, int, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encode conveyor request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter.
			backoff := time.Duration(c.config.RetryBackoffMs) * time.Millisecond * (1 << uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff) / 2))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		body, status, err := c.post(ctx, path, encoded)
		if err != nil {
			lastErr = err
			continue
		}
		if status >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("conveyor returned status %d", status)
			continue
		}
		if status != http.StatusOK && status != http.StatusNoContent {
			return nil, status, fmt.Errorf("conveyor returned status %d", status)
		}
		return body, status, nil
	}

	return nil, 0, fmt.Errorf("exhausted %d retries: %w", c.config.MaxRetries, lastErr)
}

func (c *ConveyorClient) post(ctx context.Context, path string, encoded []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, fmt.Errorf("build conveyor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read conveyor response: %w", err)
	}
	return body, resp.StatusCode, nil
}
