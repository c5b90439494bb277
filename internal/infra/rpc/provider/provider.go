// Package provider implements the availability endpoint providers.
//
// This package contains:
//   - Provider interface: one HTTP exchange against an availability endpoint
//   - HTTPProvider: GET over HTTP with response classification
//   - BaseProvider: shared health tracking
//   - ProviderMonitor: latency window and Retry-After hint tracking
package provider

import (
	"context"
	"time"

	"github.com/vietddude/namecheck/internal/core/domain"
)

// Provider defines a single availability endpoint.
type Provider interface {
	// GetName returns the provider identifier (e.g., "local", "staging")
	GetName() string

	// GetHealth returns current health metrics
	GetHealth() HealthStatus

	// IsAvailable checks if the provider is healthy enough to use
	IsAvailable() bool

	// Fetch performs one exchange and returns the raw success body.
	// Non-2xx responses and transport failures come back as *domain.APIError.
	Fetch(ctx context.Context, req *domain.Request) ([]byte, error)

	// Close cleans up resources
	Close() error
}

// HealthStatus represents the health state of a provider.
type HealthStatus struct {
	Available     bool
	Latency       time.Duration
	ErrorRate     float64
	LastSuccessAt time.Time
	LastFailureAt time.Time
	MonitorStats  *MonitorStats `json:"monitor_stats,omitempty"`
}
