package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/vietddude/namecheck/internal/core/domain"
	"github.com/vietddude/namecheck/internal/infra/rpc/provider"
	"github.com/vietddude/namecheck/internal/infra/rpc/routing"
	"github.com/vietddude/namecheck/internal/metrics"
)

// Client checks user name availability against one endpoint.
// It is safe for concurrent use.
type Client struct {
	baseURL  string
	provider provider.Provider
	retry    routing.RetryConfig
}

// NewClient creates a client that sends lookups for baseURL through p.
func NewClient(baseURL string, p provider.Provider, retry routing.RetryConfig) *Client {
	return &Client{
		baseURL:  baseURL,
		provider: p,
		retry:    retry,
	}
}

// CheckUserNameAvailable reports whether userName is still free.
// Failures are *domain.APIError values; only server errors are retried.
func (c *Client) CheckUserNameAvailable(ctx context.Context, userName string) (bool, error) {
	msg, err := c.Lookup(ctx, userName)
	if err != nil {
		return false, err
	}
	return msg.IsAvailable, nil
}

// Lookup performs the availability lookup and returns the decoded payload.
func (c *Client) Lookup(ctx context.Context, userName string) (*domain.AvailabilityMessage, error) {
	name := c.provider.GetName()
	start := time.Now()

	msg, err := c.lookup(ctx, userName)

	metrics.LookupLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = domain.KindOf(err).String()
	}
	metrics.LookupsTotal.WithLabelValues(name, outcome).Inc()

	return msg, err
}

func (c *Client) lookup(ctx context.Context, userName string) (*domain.AvailabilityMessage, error) {
	req, err := domain.NewRequest(c.baseURL, userName)
	if err != nil {
		return nil, err
	}

	name := c.provider.GetName()
	cfg := c.retry
	userHook := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		status := "unknown"
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			status = strconv.Itoa(apiErr.StatusCode)
		}
		metrics.RetriesTotal.WithLabelValues(name, status).Inc()
		slog.Warn("Retrying availability lookup",
			"provider", name,
			"user_name", userName,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
		if userHook != nil {
			userHook(attempt, err, delay)
		}
	}

	body, err := routing.CallWithRetry(ctx, cfg, func(ctx context.Context) ([]byte, error) {
		body, err := c.provider.Fetch(ctx, req)
		result := "ok"
		if err != nil {
			result = domain.KindOf(err).String()
		}
		metrics.AttemptsTotal.WithLabelValues(name, result).Inc()
		return body, err
	})
	if err != nil {
		slog.Debug("Availability lookup failed", "provider", name, "user_name", userName, "error", err)
		return nil, err
	}

	// Decoding happens after the retry loop, so decode errors are never retried.
	var msg domain.AvailabilityMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, domain.NewDecodingError(err)
	}

	return &msg, nil
}

// GetHealth returns the health of the underlying provider.
func (c *Client) GetHealth() provider.HealthStatus {
	return c.provider.GetHealth()
}

// Close releases idle connections held by the provider.
func (c *Client) Close() error {
	return c.provider.Close()
}
