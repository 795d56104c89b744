package pokeapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNotFound indicates the API answered 404 Not Found
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden indicates the API answered 403 Forbidden
	ErrForbidden = errors.New("forbidden endpoint")
	// ErrRateLimited indicates the API answered 429 Too Many Requests
	ErrRateLimited = errors.New("rate limited")
	// ErrInvalidArgument indicates a caller supplied an unusable argument
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrClientClosed is returned by lookups on a closed Client
	ErrClientClosed = errors.New("client is closed")
	// ErrNotJSON is returned when a JSON body was expected but the API sent text
	ErrNotJSON = errors.New("response is not JSON")
	// ErrRetriesExhausted indicates every attempt hit a transient server error
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// errNoMoreItems ends a PaginationIterator's internal loops. It is never
// returned from an exported method.
var errNoMoreItems = errors.New("no more items")

// APIError represents an unsuccessful PokeAPI response
type APIError struct {
	StatusCode int
	Status     string
	URL        string
	Message    string

	kind error
}

// newAPIError builds an APIError and classifies it by status code
func newAPIError(code int, url, message string) *APIError {
	e := &APIError{
		StatusCode: code,
		Status:     http.StatusText(code),
		URL:        url,
		Message:    message,
	}

	switch code {
	case http.StatusNotFound:
		e.kind = ErrNotFound
	case http.StatusForbidden:
		e.kind = ErrForbidden
	case http.StatusTooManyRequests:
		e.kind = ErrRateLimited
	}
	return e
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("API responded with status code %d %s: %s", e.StatusCode, e.Status, e.Message)
}

// Unwrap exposes the sentinel matching the status code, if any, so that
// errors.Is(err, ErrNotFound) works through wrapping.
func (e *APIError) Unwrap() error {
	return e.kind
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsForbidden checks if the error indicates a forbidden response
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if the error indicates the rate limit was hit
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError checks if the error came from a 5xx response
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}
