package domain

import (
	"errors"
	"fmt"
)

// ErrorKind tags an APIError with the way an availability lookup failed.
type ErrorKind int

const (
	KindInvalidRequest  ErrorKind = iota + 1 // request could not be built
	KindTransport                            // no response was received
	KindInvalidResponse                      // unexpected status code
	KindValidation                           // 400: the request itself was rejected
	KindServer                               // 5xx: transient, eligible for retry
	KindDecoding                             // body did not match the expected shape
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindTransport:
		return "transport"
	case KindInvalidResponse:
		return "invalid_response"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindDecoding:
		return "decoding"
	default:
		return "unknown"
	}
}

// APIError is the failure taxonomy of the availability client.
// Which fields are meaningful depends on Kind:
//
//   - KindInvalidRequest: Reason
//   - KindTransport, KindDecoding: Err
//   - KindInvalidResponse: StatusCode
//   - KindValidation: Reason
//   - KindServer: StatusCode, Reason, RetryAfter
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Reason     string
	RetryAfter string
	Err        error
}

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrInvalidRequest  = &APIError{Kind: KindInvalidRequest}
	ErrTransport       = &APIError{Kind: KindTransport}
	ErrInvalidResponse = &APIError{Kind: KindInvalidResponse}
	ErrValidation      = &APIError{Kind: KindValidation}
	ErrServer          = &APIError{Kind: KindServer}
	ErrDecoding        = &APIError{Kind: KindDecoding}
)

func NewInvalidRequestError(reason string) *APIError {
	return &APIError{Kind: KindInvalidRequest, Reason: reason}
}

func NewTransportError(err error) *APIError {
	return &APIError{Kind: KindTransport, Err: err}
}

func NewInvalidResponseError(statusCode int) *APIError {
	return &APIError{Kind: KindInvalidResponse, StatusCode: statusCode}
}

func NewValidationError(reason string) *APIError {
	return &APIError{Kind: KindValidation, StatusCode: 400, Reason: reason}
}

func NewServerError(statusCode int, reason, retryAfter string) *APIError {
	return &APIError{Kind: KindServer, StatusCode: statusCode, Reason: reason, RetryAfter: retryAfter}
}

func NewDecodingError(err error) *APIError {
	return &APIError{Kind: KindDecoding, Err: err}
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindInvalidRequest:
		return "Invalid request: " + e.Reason
	case KindTransport:
		return fmt.Sprintf("Transport error: %v", e.Err)
	case KindInvalidResponse:
		if e.StatusCode == 0 {
			return "Invalid response"
		}
		return fmt.Sprintf("Invalid response: unexpected status %d", e.StatusCode)
	case KindValidation:
		return "Validation error: " + e.Reason
	case KindServer:
		reason := e.Reason
		if reason == "" {
			reason = "no reason given"
		}
		retryAfter := e.RetryAfter
		if retryAfter == "" {
			retryAfter = "no retry after provided"
		}
		return fmt.Sprintf(
			"Server error with code %d, reason: %s, retry after: %s",
			e.StatusCode, reason, retryAfter,
		)
	case KindDecoding:
		return fmt.Sprintf("The server returned data in an unexpected format: %v", e.Err)
	default:
		return fmt.Sprintf("unknown api error (kind %d)", int(e.Kind))
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an APIError of the same kind.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first APIError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// IsRetryable reports whether err is a transient server error.
func IsRetryable(err error) bool {
	return KindOf(err) == KindServer
}
