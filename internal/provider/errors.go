package provider

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Sentinel errors for common provider failures.
var (
	ErrContextLengthExceeded = errors.New("context length exceeded")
	ErrContentBlocked        = errors.New("content blocked by safety filters")
	ErrRateLimit             = errors.New("rate limit exceeded")
	ErrAuthentication        = errors.New("authentication failed")
	ErrNetwork               = errors.New("network error")
	ErrServiceUnavailable    = errors.New("service unavailable")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrEmptyResponse         = errors.New("empty response")
)

// ErrorCode represents a provider error code.
type ErrorCode string

const (
	ErrorCodeContextLength  ErrorCode = "context_length_exceeded"
	ErrorCodeContentBlocked ErrorCode = "content_blocked"
	ErrorCodeRateLimit      ErrorCode = "rate_limit"
	ErrorCodeAuth           ErrorCode = "authentication_failed"
	ErrorCodeNetwork        ErrorCode = "network_error"
	ErrorCodeUnavailable    ErrorCode = "service_unavailable"
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"
	ErrorCodeEmptyResponse  ErrorCode = "empty_response"
)

// ProviderError wraps errors with additional context.
type ProviderError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Retryable  bool
	RetryAfter *time.Duration
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// Is matches the sentinel for the error's code, so callers can use
// errors.Is(err, ErrRateLimit) without knowing the concrete type.
func (e *ProviderError) Is(target error) bool {
	switch e.Code {
	case ErrorCodeContextLength:
		return target == ErrContextLengthExceeded
	case ErrorCodeContentBlocked:
		return target == ErrContentBlocked
	case ErrorCodeRateLimit:
		return target == ErrRateLimit
	case ErrorCodeAuth:
		return target == ErrAuthentication
	case ErrorCodeNetwork:
		return target == ErrNetwork
	case ErrorCodeUnavailable:
		return target == ErrServiceUnavailable
	case ErrorCodeInvalidRequest:
		return target == ErrInvalidRequest
	case ErrorCodeEmptyResponse:
		return target == ErrEmptyResponse
	}
	return false
}

// IsRetryable returns true if the error is retryable.
func IsRetryable(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}

// GetRetryAfter returns the retry-after duration if present.
func GetRetryAfter(err error) *time.Duration {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.RetryAfter
	}
	return nil
}

// HTTPError maps a failed HTTP response of an HTTP backend onto a ProviderError.
// message is the backend's own error text, if it sent one.
func HTTPError(status int, message string, header http.Header) *ProviderError {
	if message == "" {
		message = http.StatusText(status)
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ProviderError{Code: ErrorCodeAuth, Message: message}
	case status == http.StatusTooManyRequests:
		return &ProviderError{Code: ErrorCodeRateLimit, Message: message, Retryable: true, RetryAfter: parseRetryAfter(header)}
	case status == http.StatusRequestEntityTooLarge:
		return &ProviderError{Code: ErrorCodeContextLength, Message: message}
	case status >= 500:
		return &ProviderError{Code: ErrorCodeUnavailable, Message: message, Retryable: true, RetryAfter: parseRetryAfter(header)}
	case status >= 400:
		return &ProviderError{Code: ErrorCodeInvalidRequest, Message: message}
	default:
		return &ProviderError{Code: ErrorCodeNetwork, Message: fmt.Sprintf("unexpected status %d: %s", status, message)}
	}
}

// NetworkError wraps a transport failure.
func NetworkError(err error) *ProviderError {
	return &ProviderError{Code: ErrorCodeNetwork, Message: "network error", Underlying: err, Retryable: true}
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(header http.Header) *time.Duration {
	if header == nil {
		return nil
	}
	v := header.Get("Retry-After")
	if v == "" {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		d := time.Duration(secs) * time.Second
		return &d
	}
	if t, err := http.ParseTime(v); err == nil {
		d := max(time.Until(t), 0)
		return &d
	}
	return nil
}
