package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// Client resolves hourly retail prices for (service, sku, region) triples.
// It is stateless across calls and safe for concurrent use; callers may fan
// out one GetPrice per line item.
type Client struct {
	cfg        *Config
	httpClient *http.Client
	sleep      func(time.Duration)
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client (primarily for testing and
// recorded transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSleep replaces the backoff sleep function so tests can observe the
// retry schedule without timing the wall clock.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// NewClient constructs a retail price client.
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.Clone()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{cfg: cfg, sleep: time.Sleep}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return c, nil
}

// GetConfig returns a copy of the client configuration.
func (c *Client) GetConfig() *Config {
	return c.cfg.Clone()
}

// FilterExpression builds the catalog filter for one line item. The SKU is
// matched against both identifier conventions the catalog exposes because the
// caller cannot know which one the catalog indexes.
func (c *Client) FilterExpression(serviceName, sku, region string) string {
	f := c.cfg.Fields
	return fmt.Sprintf("%s eq '%s' and (%s eq '%s' or %s eq '%s') and %s eq '%s'",
		f.ServiceName, serviceName,
		f.SKUName, sku,
		f.ARMSKUName, sku,
		f.ARMRegionName, region)
}

// GetPrice returns the hourly retail price for a service SKU in a region, or
// 0.0 when no catalog entry matches or any error occurs. It never returns an
// error: an unpriced item must degrade to a zero-cost line instead of
// aborting the caller's pipeline.
//
// Timeouts and transient statuses (429, 500, 503) are retried once after an
// exponential backoff starting at the configured initial delay; everything
// else resolves to 0.0 immediately.
func (c *Client) GetPrice(ctx context.Context, serviceName, sku, region string) float64 {
	filter := c.FilterExpression(serviceName, sku, region)

	attempt := 0
	delay := c.cfg.InitialBackoff
	for {
		price, err := c.lookup(ctx, filter)
		if err == nil {
			return price
		}

		attempt++
		if !isTransient(err) {
			logx.WithContext(ctx).Errorf("pricing: lookup failed: %v (filter: %s)", err, filter)
			return 0.0
		}
		if attempt >= c.cfg.MaxAttempts {
			logx.WithContext(ctx).Errorf("pricing: giving up after %d attempts: %v (filter: %s)", attempt, err, filter)
			return 0.0
		}

		logx.WithContext(ctx).Slowf("pricing: transient failure (attempt %d/%d), retrying in %s: %v",
			attempt, c.cfg.MaxAttempts, delay, err)
		c.sleep(delay)
		delay *= 2
	}
}

// lookup performs a single catalog query. A nil error with a 0.0 price is the
// normal "unknown SKU" outcome, not a failure.
func (c *Client) lookup(ctx context.Context, filter string) (float64, error) {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return 0, fmt.Errorf("pricing: parse endpoint: %w", err)
	}
	query := u.Query()
	query.Set("$filter", filter)
	if c.cfg.CurrencyCode != "" {
		query.Set("currencyCode", c.cfg.CurrencyCode)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("pricing: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("pricing: read response: %w", err)
	}

	var parsed retailPriceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("pricing: decode response: %w", err)
	}

	if len(parsed.Items) == 0 {
		logx.WithContext(ctx).Slowf("pricing: no catalog items for filter: %s", filter)
		return 0.0, nil
	}

	// First match wins; the catalog's own ordering decides ties.
	price, ok := parsed.Items[0].price()
	if !ok {
		logx.WithContext(ctx).Slowf("pricing: catalog item missing price for filter: %s", filter)
		return 0.0, nil
	}
	return price, nil
}

// statusError marks a non-2xx catalog response so the retry policy can branch
// on the status code.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("pricing: http status %d", e.code)
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var se *statusError
	if errors.As(err, &se) {
		switch se.code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusServiceUnavailable:
			return true
		default:
			return false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
