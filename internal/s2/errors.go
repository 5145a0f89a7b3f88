package s2

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the batch client.
var (
	// ErrRateLimited indicates the rate limit was still exceeded after
	// the bounded retries.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrGatewayTimeout indicates the proxy gave up waiting on the
	// upstream (its own retries were exhausted). Distinct from
	// ErrRateLimited so callers can tell "we are being throttled"
	// from "the upstream is broken".
	ErrGatewayTimeout = errors.New("gateway timeout from proxy")

	// ErrInvalidResponse indicates a response body that could not be
	// decoded as a batch result.
	ErrInvalidResponse = errors.New("invalid batch response")
)

// APIError represents a non-success HTTP response from the batch API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("batch API error (status %d): %s", e.StatusCode, e.Body)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsGatewayTimeout returns true if the error indicates the proxy
// exhausted its upstream retries.
func IsGatewayTimeout(err error) bool {
	if errors.Is(err, ErrGatewayTimeout) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusGatewayTimeout
	}
	return false
}
