package domain

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		userName string
		wantURL  string
		wantErr  bool
	}{
		{"simple", "http://127.0.0.1:8080", "peterfriese", "http://127.0.0.1:8080/isUserNameAvailable?userName=peterfriese", false},
		{"trailing slash", "http://localhost:8080/", "sjobs", "http://localhost:8080/isUserNameAvailable?userName=sjobs", false},
		{"base path", "https://api.example.com/v1", "a b", "https://api.example.com/v1/isUserNameAvailable?userName=a+b", false},
		{"empty name", "http://localhost:8080", "", "", true},
		{"control char", "http://localhost:8080", "bad\nname", "", true},
		{"invalid utf8", "http://localhost:8080", "\xff\xfe", "", true},
		{"no scheme", "localhost:8080", "sjobs", "", true},
		{"no host", "http://", "sjobs", "", true},
		{"bad url", "http://[::1", "sjobs", "", true},
	}

	for _, tt := range tests {
		req, err := NewRequest(tt.base, tt.userName)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got URL %s", tt.name, req.URL())
				continue
			}
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("%s: expected InvalidRequest, got %v", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got := req.URL(); got != tt.wantURL {
			t.Errorf("%s: URL = %s, want %s", tt.name, got, tt.wantURL)
		}
		if req.UserName() != tt.userName {
			t.Errorf("%s: UserName = %q, want %q", tt.name, req.UserName(), tt.userName)
		}
	}
}

func TestAPIError_KindMatching(t *testing.T) {
	err := fmt.Errorf("failed after 3 attempts: %w", NewServerError(503, "maintenance", "10"))

	if !errors.Is(err, ErrServer) {
		t.Errorf("expected wrapped server error to match ErrServer")
	}
	if errors.Is(err, ErrValidation) {
		t.Errorf("server error must not match ErrValidation")
	}
	if !IsRetryable(err) {
		t.Errorf("server error should be retryable")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("errors.As failed")
	}
	if apiErr.StatusCode != 503 || apiErr.RetryAfter != "10" {
		t.Errorf("unexpected fields: %+v", apiErr)
	}
}

func TestAPIError_OnlyServerIsRetryable(t *testing.T) {
	errs := []error{
		NewInvalidRequestError("URL invalid"),
		NewTransportError(io.EOF),
		NewInvalidResponseError(302),
		NewValidationError("too short"),
		NewDecodingError(io.ErrUnexpectedEOF),
		errors.New("plain"),
		nil,
	}
	for _, err := range errs {
		if IsRetryable(err) {
			t.Errorf("IsRetryable(%v) = true, want false", err)
		}
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	err := NewTransportError(io.EOF)
	if !errors.Is(err, io.EOF) {
		t.Errorf("transport error should unwrap to its cause")
	}
	if KindOf(err) != KindTransport {
		t.Errorf("KindOf = %v, want transport", KindOf(err))
	}
}

func TestAPIError_Descriptions(t *testing.T) {
	tests := []struct {
		err  *APIError
		want string
	}{
		{NewInvalidRequestError("URL invalid"), "Invalid request: URL invalid"},
		{NewInvalidResponseError(302), "Invalid response: unexpected status 302"},
		{NewValidationError("too short"), "Validation error: too short"},
		{NewServerError(500, "", ""), "Server error with code 500, reason: no reason given, retry after: no retry after provided"},
		{NewServerError(503, "busy", "3"), "Server error with code 503, reason: busy, retry after: 3"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	if msg := NewDecodingError(io.EOF).Error(); !strings.Contains(msg, "unexpected format") {
		t.Errorf("decoding description = %q", msg)
	}
}
