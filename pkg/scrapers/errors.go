package scrapers

import (
	"fmt"
	"time"
)

// StatusRateLimit is the HTTP status providers return when throttling.
const StatusRateLimit = 429

// ConnectionError wraps transport-level failures (DNS, TLS, timeouts).
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// APIError represents a non-success HTTP response from a provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

// RateLimitError indicates the provider throttled the request.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

// NewRateLimitError creates a RateLimitError with an optional retry hint.
func NewRateLimitError(retryAfter time.Duration, message string) *RateLimitError {
	if message == "" {
		message = "rate limit exceeded"
	}
	return &RateLimitError{RetryAfter: retryAfter, Message: message}
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s, retry after %s", e.Message, e.RetryAfter)
	}
	return e.Message
}
