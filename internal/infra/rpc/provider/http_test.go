package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vietddude/namecheck/internal/core/domain"
)

func newRequest(t *testing.T, base, name string) *domain.Request {
	t.Helper()
	req, err := domain.NewRequest(base, name)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	return req
}

func TestHTTPProvider_FetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/isUserNameAvailable" {
			t.Errorf("expected path /isUserNameAvailable, got %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("expected method GET, got %s", r.Method)
		}
		if r.URL.Query().Get("userName") != "peterfriese" {
			t.Errorf("expected userName=peterfriese, got %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("expected X-Request-ID header")
		}
		_ = json.NewEncoder(w).Encode(domain.AvailabilityMessage{IsAvailable: true, UserName: "peterfriese"})
	}))
	defer server.Close()

	p := NewHTTPProvider("mock", 5*time.Second)
	body, err := p.Fetch(context.Background(), newRequest(t, server.URL, "peterfriese"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var msg domain.AvailabilityMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		t.Fatalf("body is not a success payload: %v", err)
	}
	if !msg.IsAvailable {
		t.Errorf("expected isAvailable=true")
	}

	health := p.GetHealth()
	if !health.Available || health.ErrorRate != 0 {
		t.Errorf("unexpected health after success: %+v", health)
	}
}

func TestHTTPProvider_Classification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		retryAfter string
		wantKind   domain.ErrorKind
		wantReason string
	}{
		{"validation", 400, `{"error":true,"reason":"Username too short"}`, "", domain.KindValidation, "Username too short"},
		{"validation bad body", 400, `oops`, "", domain.KindDecoding, ""},
		{"server", 503, `{"error":true,"reason":"maintenance"}`, "3", domain.KindServer, "maintenance"},
		{"server html", 502, `<html>bad gateway</html>`, "", domain.KindServer, ""},
		{"not found", 404, `{"error":true,"reason":"nope"}`, "", domain.KindInvalidResponse, ""},
		{"redirect", 304, ``, "", domain.KindInvalidResponse, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewHTTPProvider("mock", 5*time.Second)
			_, err := p.Fetch(context.Background(), newRequest(t, server.URL, "sjobs"))
			if err == nil {
				t.Fatalf("expected error for status %d", tt.status)
			}

			var apiErr *domain.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *domain.APIError, got %T", err)
			}
			if apiErr.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", apiErr.Kind, tt.wantKind)
			}
			if apiErr.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", apiErr.Reason, tt.wantReason)
			}
			if tt.wantKind == domain.KindServer {
				if apiErr.StatusCode != tt.status {
					t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
				}
				if apiErr.RetryAfter != tt.retryAfter {
					t.Errorf("retry after = %q, want %q", apiErr.RetryAfter, tt.retryAfter)
				}
				if p.Monitor.GetRetryAfter() != tt.retryAfter {
					t.Errorf("monitor hint = %q, want %q", p.Monitor.GetRetryAfter(), tt.retryAfter)
				}
			}
		})
	}
}

func TestHTTPProvider_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p := NewHTTPProvider("mock", time.Second)
	_, err := p.Fetch(context.Background(), newRequest(t, url, "sjobs"))
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if p.GetHealth().LastFailureAt.IsZero() {
		t.Errorf("expected failure to be recorded")
	}
}

func TestHTTPProvider_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := NewHTTPProvider("mock", 5*time.Second)
	_, err := p.Fetch(ctx, newRequest(t, server.URL, "sjobs"))
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected cause to be context.DeadlineExceeded, got %v", err)
	}
}
