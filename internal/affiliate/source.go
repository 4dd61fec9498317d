// Package affiliate fetches per-user wager totals from the affiliate API.
package affiliate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
	"github.com/casynetic/WagerBoard_Go/internal/metrics"
)

// Source supplies affiliate records for a date range.
type Source interface {
	FetchRecords(ctx context.Context, period domain.Period) ([]domain.AffiliateRecord, error)
}

const (
	affiliatesPath    = "/v1/external/affiliates"
	defaultRetryDelay = 500 * time.Millisecond
	maxErrorBodyBytes = 512
)

// Client is the HTTP implementation of Source.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates an affiliate API client.
func NewClient(baseURL, apiKey string, timeout time.Duration, maxRetries int) *Client {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		retryDelay: defaultRetryDelay,
	}
}

// rawRecord accepts wagered_amount as either a JSON string or number.
type rawRecord struct {
	Username      string      `json:"username"`
	WageredAmount interface{} `json:"wagered_amount"`
}

type affiliatesResponse struct {
	Affiliates []rawRecord `json:"affiliates"`
	Data       []rawRecord `json:"data"`
}

// FetchRecords queries the affiliate API for the period.
// Server errors are retried with exponential backoff; other non-2xx
// responses and exhausted retries yield domain.ErrUpstreamUnavailable.
func (c *Client) FetchRecords(ctx context.Context, period domain.Period) ([]domain.AffiliateRecord, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	body, err := c.get(ctx, period)
	metrics.AffiliateFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AffiliateFetches.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Warn("Affiliate fetch failed", "start", period.StartDate(), "end", period.EndDate(), "error", err)
		return nil, err
	}

	records, err := decodeRecords(body)
	if err != nil {
		metrics.AffiliateFetches.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	outcome := metrics.OutcomeSuccess
	if len(records) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.AffiliateFetches.WithLabelValues(outcome).Inc()
	log.Debug("Affiliate records fetched", "start", period.StartDate(), "end", period.EndDate(), "count", len(records))
	return records, nil
}

func (c *Client) get(ctx context.Context, period domain.Period) ([]byte, error) {
	params := url.Values{}
	params.Set("start_at", period.StartDate())
	params.Set("end_at", period.EndDate())
	params.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, affiliatesPath, params.Encode())

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := c.retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			logger.FromContext(ctx).Info("Retrying affiliate request", "attempt", attempt, "delay", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, truncate(body))
		case readErr != nil:
			lastErr = fmt.Errorf("failed to read response: %w", readErr)
			continue
		}
		return body, nil
	}

	return nil, fmt.Errorf("%w: max retries exceeded: %v", domain.ErrUpstreamUnavailable, lastErr)
}

// decodeRecords parses the affiliates payload. Records without a username are
// dropped; malformed amounts become zero.
func decodeRecords(body []byte) ([]domain.AffiliateRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var resp affiliatesResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode affiliates: %w", err)
	}

	raw := resp.Affiliates
	if raw == nil {
		raw = resp.Data
	}
	if raw == nil {
		return nil, errors.New("response has neither affiliates nor data")
	}

	records := make([]domain.AffiliateRecord, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Username)
		if name == "" {
			continue
		}
		records = append(records, domain.AffiliateRecord{
			Username:      name,
			WageredAmount: domain.ParseAmount(r.WageredAmount),
		})
	}
	return records, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBodyBytes {
		b = b[:maxErrorBodyBytes]
	}
	return strings.TrimSpace(string(b))
}
