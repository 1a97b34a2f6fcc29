package solapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when api key, secret or sender are missing
	ErrNotConfigured = errors.New("solapi client: not configured")

	// ErrUnavailable is returned when the gateway cannot be reached
	ErrUnavailable = errors.New("solapi client: gateway unavailable")

	// ErrRejected is returned for non-2xx gateway responses
	ErrRejected = errors.New("solapi client: request rejected")

	// ErrInvalidResponse is returned when the response body cannot be decoded
	ErrInvalidResponse = errors.New("solapi client: invalid response")

	ErrInternal = errors.New("solapi client: internal error")
)

// APIError carries the gateway status and raw body of a rejected request
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d %s: %s", ErrRejected, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrRejected, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return ErrRejected
}
