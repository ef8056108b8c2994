package integrations

import (
	"errors"
	"net/http"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the backend has no data for a query.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrMalformed is returned when a response body is not the expected JSON shape.
	ErrMalformed = errors.New("malformed response")
)

// NewHTTPClient creates an HTTP client with a standard timeout for backend requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
