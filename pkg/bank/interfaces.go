package bank

import (
	"context"
)

// AuthService handles authentication against the user service
type AuthService interface {
	// Login performs a demo login and returns a session for username
	Login(ctx context.Context, username string) (*Session, error)

	// Session builds a session from a caller-supplied bearer token
	Session(token, username string) *Session
}

// BalanceService reads account balances
type BalanceService interface {
	// Get retrieves the balance of the session's account
	Get(ctx context.Context, session *Session) (*Balance, error)
}

// TransactionService reads transaction history
type TransactionService interface {
	// List retrieves the transaction history of the session's account, newest first
	List(ctx context.Context, session *Session) ([]*Transaction, error)
}

// ContactService reads the user's saved contacts
type ContactService interface {
	// List retrieves the contacts of the session's user
	List(ctx context.Context, session *Session) ([]*Contact, error)
}
