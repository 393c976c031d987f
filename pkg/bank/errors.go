package bank

import (
	"errors"

	internalTypes "github.com/eshaffer321/bank-assistant-go/internal/types"
)

var (
	// ErrNotAuthenticated is returned when an upstream rejects the credential
	ErrNotAuthenticated = internalTypes.ErrNotAuthenticated

	// ErrLoginFailed is returned when the demo login yields no token
	ErrLoginFailed = internalTypes.ErrLoginFailed

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = internalTypes.ErrRateLimited

	// ErrTimeout is returned on timeout
	ErrTimeout = internalTypes.ErrTimeout

	// ErrNotFound is returned when resource not found
	ErrNotFound = internalTypes.ErrNotFound

	// ErrServerError is returned for server errors
	ErrServerError = internalTypes.ErrServerError
)

// Error represents an upstream API error
type Error = internalTypes.Error

// IsAuthError checks if error is authentication related
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrLoginFailed)
}

// IsRetryable checks if error is retryable
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServerError) {
		return true
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}

	return false
}

// ServiceOf returns the upstream that produced err, if known
func ServiceOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Service
	}
	return ""
}
