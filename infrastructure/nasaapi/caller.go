package nasaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"nasa-server/services/space-tools/infrastructure/metrics"
)

// Options configures the shared NASA API caller.
type Options struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RateLimitInterval time.Duration
	Retry             RetryConfig
}

// Caller is the shared plumbing under every NASA source client: one resty
// client with API-key injection, a minimum interval between requests to stay
// under NASA's hourly quota, and retry with exponential backoff.
type Caller struct {
	httpClient *resty.Client
	apiKey     string

	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration

	retry RetryConfig
}

// New creates a NASA API caller.
func New(opts Options) *Caller {
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("User-Agent", "NASA-Space-Tools/1.0")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	retryCfg := opts.Retry
	if retryCfg.MaxAttempts == 0 {
		retryCfg = DefaultRetryConfig()
	}

	return &Caller{
		httpClient: client,
		apiKey:     opts.APIKey,
		interval:   opts.RateLimitInterval,
		retry:      retryCfg,
	}
}

// rateLimit blocks until the minimum interval since the previous request has
// passed. NASA allows 1000 requests/hour on a personal key; 3.6s between
// requests keeps a single instance under that.
func (c *Caller) rateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.interval > 0 {
		if wait := c.interval - time.Since(c.lastCall); wait > 0 {
			time.Sleep(wait)
		}
	}
	c.lastCall = time.Now()
}

// GetJSON performs a GET request against path and decodes the JSON response
// into out.
func (c *Caller) GetJSON(ctx context.Context, path string, params map[string]string, out any) error {
	body, err := c.GetRaw(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("malformed NASA API payload from %s: %w", path, err)
	}
	return nil
}

// GetRaw performs a GET request against path and returns the raw response
// body. Retryable upstream failures (quota, 5xx, timeouts) are retried with
// backoff; other failures surface immediately.
func (c *Caller) GetRaw(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	result, err := WithRetry(ctx, c.retry, path, func() (*[]byte, error) {
		c.rateLimit()

		started := time.Now()
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("api_key", c.apiKey).
			Get(path)
		metrics.RecordUpstreamLatency(path, time.Since(started).Seconds())

		if err != nil {
			return nil, fmt.Errorf("failed to query NASA API %s: %w", path, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("NASA API error (status %d) from %s: %s", resp.StatusCode(), path, resp.String())
		}

		body := resp.Body()
		return &body, nil
	})
	if err != nil {
		return nil, err
	}
	return *result, nil
}
