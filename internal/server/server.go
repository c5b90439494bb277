package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietddude/namecheck/internal/core/domain"
	"github.com/vietddude/namecheck/internal/infra/storage"
	"github.com/vietddude/namecheck/internal/metrics"
)

// MinUserNameLength is the shortest name the server accepts.
const MinUserNameLength = 3

// Faults makes the first ServerErrors lookups fail with Status.
type Faults struct {
	ServerErrors int
	Status       int
	RetryAfter   string
	Reason       string
}

// Server serves the user name availability API.
type Server struct {
	registry storage.NameRegistry
	faults   Faults
	injected atomic.Int64
	server   *http.Server
}

// NewServer creates a new availability server listening on port.
func NewServer(registry storage.NameRegistry, faults Faults, port int) *Server {
	s := &Server{
		registry: registry,
		faults:   faults,
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routing table of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+domain.AvailabilityPath, s.handleAvailability)
	mux.HandleFunc("POST /users", s.handleReserve)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	const route = "availability"
	name := r.URL.Query().Get(domain.UserNameParam)

	if reason := validateUserName(name); reason != "" {
		writeError(w, route, http.StatusBadRequest, reason)
		return
	}

	if s.injectFault(w, r) {
		return
	}

	taken, err := s.registry.IsTaken(r.Context(), name)
	if err != nil {
		slog.Error("Registry lookup failed", "user_name", name, "error", err)
		writeError(w, route, http.StatusInternalServerError, "registry unavailable")
		return
	}

	writeJSON(w, route, http.StatusOK, domain.AvailabilityMessage{
		IsAvailable: !taken,
		UserName:    name,
	})
}

func (s *Server) handleReserve(w http.ResponseWriter, r *http.Request) {
	const route = "reserve"
	name := r.URL.Query().Get(domain.UserNameParam)

	if reason := validateUserName(name); reason != "" {
		writeError(w, route, http.StatusBadRequest, reason)
		return
	}

	err := s.registry.Reserve(r.Context(), name)
	if errors.Is(err, storage.ErrNameTaken) {
		writeError(w, route, http.StatusConflict, "user name already taken")
		return
	}
	if err != nil {
		slog.Error("Registry reserve failed", "user_name", name, "error", err)
		writeError(w, route, http.StatusInternalServerError, "registry unavailable")
		return
	}

	slog.Info("Reserved user name", "user_name", name)
	writeJSON(w, route, http.StatusCreated, domain.AvailabilityMessage{
		IsAvailable: false,
		UserName:    name,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	const route = "health"
	if err := s.registry.Health(r.Context()); err != nil {
		writeJSON(w, route, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, route, http.StatusOK, map[string]string{"status": "ok"})
}

// injectFault answers with the configured server error while the fault
// budget lasts. It reports whether a response was written.
func (s *Server) injectFault(w http.ResponseWriter, r *http.Request) bool {
	if s.faults.ServerErrors <= 0 {
		return false
	}
	n := s.injected.Add(1)
	if n > int64(s.faults.ServerErrors) {
		return false
	}

	metrics.ServerFaultsInjected.Inc()
	slog.Debug("Injecting server error",
		"n", n,
		"of", s.faults.ServerErrors,
		"status", s.faults.Status,
		"request_id", r.Header.Get("X-Request-ID"),
	)

	if s.faults.RetryAfter != "" {
		w.Header().Set("Retry-After", s.faults.RetryAfter)
	}
	reason := s.faults.Reason
	if reason == "" {
		reason = http.StatusText(s.faults.Status)
	}
	writeError(w, "availability", s.faults.Status, reason)
	return true
}

func validateUserName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "userName must not be empty"
	}
	if utf8.RuneCountInString(name) < MinUserNameLength {
		return fmt.Sprintf("userName must be at least %d characters", MinUserNameLength)
	}
	return ""
}

func writeError(w http.ResponseWriter, route string, status int, reason string) {
	writeJSON(w, route, status, domain.APIErrorMessage{Error: true, Reason: reason})
}

func writeJSON(w http.ResponseWriter, route string, status int, body any) {
	metrics.ServerResponsesTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("Failed to write response", "route", route, "error", err)
	}
}
