package types

import (
	"errors"
	"fmt"
)

// Error represents an upstream API error
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Service    string `json:"service,omitempty"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("error: %s", e.Code)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors through Err, otherwise compares codes
func (e *Error) Is(target error) bool {
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}

	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
