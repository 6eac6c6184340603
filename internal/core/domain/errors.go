package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoRefreshToken      = errors.New("No refresh token available")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrForbidden           = errors.New("access forbidden")
	ErrMissingCredentials  = errors.New("identifier and password are required")
	ErrInvalidRegistration = errors.New("invalid registration request")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoRoles             = errors.New("account has no role")
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// TimeoutError is returned when a request exceeds the configured timeout.
type TimeoutError struct {
	Method  string
	URL     string
	Timeout time.Duration
}

// Error keeps the wording the normalizer keys on.
func (e *TimeoutError) Error() string {
	return "Request timeout"
}

// NetworkError is returned when the remote server could not be reached.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Failed to fetch %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
