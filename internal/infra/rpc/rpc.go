// Package rpc provides a retrying client for the user name availability API.
//
// The client issues GET {base}/isUserNameAvailable?userName={name},
// classifies the response and retries transient server errors (5xx) with a
// fixed delay up to a bounded number of attempts. Every other failure is
// returned on first occurrence.
//
// # Quick Start
//
//	import "github.com/vietddude/namecheck/internal/infra/rpc"
//
//	p := rpc.NewHTTPProvider("local", 10*time.Second)
//	client := rpc.NewClient("http://127.0.0.1:8080", p, rpc.DefaultRetryConfig)
//
//	available, err := client.CheckUserNameAvailable(ctx, "peterfriese")
//	if errors.Is(err, domain.ErrValidation) {
//	    // the server rejected the name itself
//	}
//
// # Package Structure
//
//   - provider/ - HTTP exchange, response classification, health monitoring
//   - routing/  - retry loop and retry predicate
//
// Most types are re-exported at the root level for convenience.
package rpc

import (
	"time"

	"github.com/vietddude/namecheck/internal/infra/rpc/provider"
	"github.com/vietddude/namecheck/internal/infra/rpc/routing"
)

// Provider is the core interface for availability endpoints.
type Provider = provider.Provider

// HTTPProvider performs lookups over HTTP.
type HTTPProvider = provider.HTTPProvider

// HealthStatus represents the health state of a provider.
type HealthStatus = provider.HealthStatus

// MonitorStats holds monitoring statistics for a provider.
type MonitorStats = provider.MonitorStats

// RetryConfig defines retry behavior.
type RetryConfig = routing.RetryConfig

// DefaultRetryConfig retries server errors ten times, three seconds apart.
var DefaultRetryConfig = routing.DefaultRetryConfig

// NewHTTPProvider creates a new HTTP-based provider.
func NewHTTPProvider(name string, timeout time.Duration) *HTTPProvider {
	return provider.NewHTTPProvider(name, timeout)
}
