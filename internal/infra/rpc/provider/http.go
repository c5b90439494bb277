package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/namecheck/internal/core/domain"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 1 << 20

// HTTPProvider performs availability lookups over HTTP.
type HTTPProvider struct {
	*BaseProvider

	httpClient *http.Client
}

// NewHTTPProvider creates a new HTTP-based provider.
func NewHTTPProvider(name string, timeout time.Duration) *HTTPProvider {
	return NewHTTPProviderWithClient(name, &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	})
}

// NewHTTPProviderWithClient creates a provider around an existing http.Client.
func NewHTTPProviderWithClient(name string, client *http.Client) *HTTPProvider {
	return &HTTPProvider{
		BaseProvider: NewBaseProvider(name),
		httpClient:   client,
	}
}

// Fetch issues one GET for req and classifies the response.
func (p *HTTPProvider) Fetch(ctx context.Context, req *domain.Request) ([]byte, error) {
	start := time.Now()
	requestID := uuid.NewString()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL(), nil)
	if err != nil {
		return nil, domain.NewInvalidRequestError(err.Error())
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		p.RecordFailure()
		return nil, domain.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		p.RecordFailure()
		return nil, domain.NewTransportError(fmt.Errorf("read response: %w", err))
	}

	latency := time.Since(start)
	slog.Debug("Received response",
		"provider", p.Name,
		"request_id", requestID,
		"status", resp.StatusCode,
		"latency", latency,
	)

	if err := p.classify(resp, body); err != nil {
		p.RecordFailure()
		return nil, err
	}

	p.RecordSuccess(latency)
	return body, nil
}

// classify maps a status code and body onto the error taxonomy.
// A nil result means the body is a success payload.
func (p *HTTPProvider) classify(resp *http.Response, body []byte) error {
	code := resp.StatusCode

	switch {
	case code >= 200 && code < 300:
		return nil

	case code == http.StatusBadRequest:
		var msg domain.APIErrorMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return domain.NewDecodingError(fmt.Errorf("parse error body: %w", err))
		}
		return domain.NewValidationError(msg.Reason)

	case code >= 500 && code < 600:
		retryAfter := resp.Header.Get("Retry-After")
		p.Monitor.RecordServerError(code, retryAfter)

		// Proxies answer 502/504 with HTML; that is still a transient error.
		var msg domain.APIErrorMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return domain.NewServerError(code, "", retryAfter)
		}
		return domain.NewServerError(code, msg.Reason, retryAfter)

	default:
		return domain.NewInvalidResponseError(code)
	}
}

// Close cleans up resources.
func (p *HTTPProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
