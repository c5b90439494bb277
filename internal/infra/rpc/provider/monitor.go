package provider

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ProviderStatus represents the health state of a provider.
type ProviderStatus int

const (
	StatusHealthy  ProviderStatus = iota // Provider is working normally
	StatusDegraded                       // Provider is slow or returned a recent 5xx
	StatusFailing                        // Provider keeps returning 5xx
)

func (s ProviderStatus) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusFailing:
		return "failing"
	default:
		return "unknown"
	}
}

// MonitorStats holds monitoring statistics for a provider.
type MonitorStats struct {
	Status            ProviderStatus
	AverageLatency    time.Duration
	ServerErrorCount  int
	ConsecutiveErrors int
	LastStatusCode    int
	LastRetryAfter    string
	RequestsLast1Hour int
}

// ProviderMonitor tracks latency and server error hints for a provider.
type ProviderMonitor struct {
	mu sync.RWMutex

	// Response time tracking
	recentLatencies  []time.Duration
	maxLatencyWindow int

	// Server error tracking
	serverErrorCount  int
	consecutiveErrors int
	lastStatusCode    int
	lastRetryAfter    string
	lastServerError   time.Time

	requestTimestamps []time.Time
	windowDuration    time.Duration

	// Thresholds
	slowResponseThreshold time.Duration
	failingThreshold      int
	errorMemory           time.Duration
}

// NewProviderMonitor creates a new monitor with default settings.
func NewProviderMonitor() *ProviderMonitor {
	return &ProviderMonitor{
		recentLatencies:       make([]time.Duration, 0, 100),
		maxLatencyWindow:      100,
		requestTimestamps:     make([]time.Time, 0),
		windowDuration:        time.Hour,
		slowResponseThreshold: 3 * time.Second,
		failingThreshold:      5,
		errorMemory:           time.Minute,
	}
}

// RecordRequest records a successful request with its latency.
func (pm *ProviderMonitor) RecordRequest(latency time.Duration) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	now := time.Now()

	pm.recentLatencies = append(pm.recentLatencies, latency)
	if len(pm.recentLatencies) > pm.maxLatencyWindow {
		pm.recentLatencies = pm.recentLatencies[1:]
	}
	pm.consecutiveErrors = 0

	pm.requestTimestamps = append(pm.requestTimestamps, now)
	cutoff := now.Add(-pm.windowDuration)
	filtered := pm.requestTimestamps[:0]
	for _, t := range pm.requestTimestamps {
		if t.After(cutoff) {
			filtered = append(filtered, t)
		}
	}
	pm.requestTimestamps = filtered
}

// RecordServerError records a 5xx response and its Retry-After hint.
// The hint is kept for observability; it does not throttle the provider.
func (pm *ProviderMonitor) RecordServerError(statusCode int, retryAfter string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.serverErrorCount++
	pm.consecutiveErrors++
	pm.lastStatusCode = statusCode
	pm.lastRetryAfter = retryAfter
	pm.lastServerError = time.Now()
}

// CheckProviderStatus returns the current status of the provider.
func (pm *ProviderMonitor) CheckProviderStatus() ProviderStatus {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if pm.consecutiveErrors >= pm.failingThreshold {
		return StatusFailing
	}
	if pm.consecutiveErrors > 0 && time.Since(pm.lastServerError) < pm.errorMemory {
		return StatusDegraded
	}

	if len(pm.recentLatencies) > 10 {
		var total time.Duration
		for _, lat := range pm.recentLatencies {
			total += lat
		}
		if total/time.Duration(len(pm.recentLatencies)) > pm.slowResponseThreshold {
			return StatusDegraded
		}
	}

	return StatusHealthy
}

// GetRetryAfter returns the last server hint, or "" if none was sent.
func (pm *ProviderMonitor) GetRetryAfter() string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.lastRetryAfter
}

// GetAverageLatency returns the average latency of recent requests.
func (pm *ProviderMonitor) GetAverageLatency() time.Duration {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if len(pm.recentLatencies) == 0 {
		return 0
	}

	var total time.Duration
	for _, lat := range pm.recentLatencies {
		total += lat
	}

	return total / time.Duration(len(pm.recentLatencies))
}

// GetRequestCount returns number of successful requests in the given duration.
func (pm *ProviderMonitor) GetRequestCount(duration time.Duration) int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	cutoff := time.Now().Add(-duration)
	count := 0
	for _, t := range pm.requestTimestamps {
		if t.After(cutoff) {
			count++
		}
	}
	return count
}

// GetStats returns current monitoring statistics.
func (pm *ProviderMonitor) GetStats() MonitorStats {
	status := pm.CheckProviderStatus()
	avgLatency := pm.GetAverageLatency()
	reqLast1Hour := pm.GetRequestCount(time.Hour)

	pm.mu.RLock()
	defer pm.mu.RUnlock()

	return MonitorStats{
		Status:            status,
		AverageLatency:    avgLatency,
		ServerErrorCount:  pm.serverErrorCount,
		ConsecutiveErrors: pm.consecutiveErrors,
		LastStatusCode:    pm.lastStatusCode,
		LastRetryAfter:    pm.lastRetryAfter,
		RequestsLast1Hour: reqLast1Hour,
	}
}

// ParseRetryAfter interprets a Retry-After header value, which is either
// delta-seconds or an HTTP-date. ok is false for empty or unparsable values.
func ParseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}

	at, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}
	d := at.Sub(now)
	if d < 0 {
		d = 0
	}
	return d, true
}
