package types

import (
	"errors"
	"time"
)

const (
	// DefaultUserServiceURL is the default user service base URL
	DefaultUserServiceURL = "http://userservice:8080"

	// DefaultBalanceReaderURL is the default balance reader base URL
	DefaultBalanceReaderURL = "http://balancereader:8080"

	// DefaultTransactionHistoryURL is the default transaction history base URL
	DefaultTransactionHistoryURL = "http://transactionhistory:8080"

	// DefaultContactsURL is the default contacts service base URL
	DefaultContactsURL = "http://contacts:8080"

	// DefaultTimeout is the per-call upstream timeout
	DefaultTimeout = 5 * time.Second

	// UserAgent is the user agent string
	UserAgent = "bank-assistant-go/1.0.0"

	// DefaultCurrency is the only currency the upstream services report
	DefaultCurrency = "USD"
)

// Common errors
var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrLoginFailed is returned when login fails
	ErrLoginFailed = errors.New("login failed")

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout is returned on timeout
	ErrTimeout = errors.New("request timeout")

	// ErrNotFound is returned when resource not found
	ErrNotFound = errors.New("resource not found")

	// ErrServerError is returned for server errors
	ErrServerError = errors.New("server error")
)
