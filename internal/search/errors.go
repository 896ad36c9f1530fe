package search

import "fmt"

// ProviderUnavailableError wraps a transport-level failure reaching the
// search provider (timeout, connection refused). Retryable by the caller.
type ProviderUnavailableError struct {
	Err error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("search provider unavailable: %v", e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }

// ProviderRejectedError carries a non-success status returned by the search
// provider (rate limiting, auth rejection, malformed query).
type ProviderRejectedError struct {
	StatusCode int
	Message    string
}

func (e *ProviderRejectedError) Error() string {
	return fmt.Sprintf("search provider rejected the request (%d): %s", e.StatusCode, e.Message)
}
