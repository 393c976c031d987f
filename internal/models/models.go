// Package models holds the per-request user data assembled from the upstream services.
package models

import (
	"github.com/shopspring/decimal"
)

// Direction says whether money entered or left the user's account
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// UserData is everything known about a user for one request. It is never persisted.
type UserData struct {
	Username     string        `json:"username"`
	Balance      Balance       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
	Contacts     []Contact     `json:"contacts"`

	// Fallbacks lists the fields that were filled with demo data
	Fallbacks []string `json:"-"`
}

// Balance is an account balance in major units
type Balance struct {
	Amount   decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// Transaction is a normalized ledger entry. Amount is signed: positive when incoming.
type Transaction struct {
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Timestamp     string          `json:"timestamp"`
	Direction     Direction       `json:"direction"`
	RawAmount     *int64          `json:"raw_amount,omitempty"`
	FromAccount   string          `json:"from_account,omitempty"`
	ToAccount     string          `json:"to_account,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
}

// Contact is a saved payee
type Contact struct {
	Label      string `json:"label"`
	AccountNum string `json:"account_num"`
	IsExternal *bool  `json:"is_external,omitempty"`
}

// IsIncoming reports whether the transaction credited the account
func (t Transaction) IsIncoming() bool {
	return t.Direction == Incoming
}

// Magnitude returns the unsigned amount
func (t Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

// Month returns the YYYY-MM bucket key, taken from the first 7 characters of the timestamp
func (t Transaction) Month() (string, bool) {
	if len(t.Timestamp) < 7 {
		return "", false
	}
	return t.Timestamp[:7], true
}

// Date returns the YYYY-MM-DD part of the timestamp
func (t Transaction) Date() string {
	if t.Timestamp == "" {
		return "Unknown"
	}
	if len(t.Timestamp) < 10 {
		return t.Timestamp
	}
	return t.Timestamp[:10]
}

// SignedAmount formats the amount with an explicit sign and two decimals
func (t Transaction) SignedAmount() string {
	if t.IsIncoming() {
		return "+" + t.Magnitude().StringFixed(2)
	}
	return "-" + t.Magnitude().StringFixed(2)
}

// NewTransaction builds a transaction from a signed amount; the sign sets the direction
func NewTransaction(amount decimal.Decimal, description, timestamp string) Transaction {
	direction := Outgoing
	if amount.IsPositive() {
		direction = Incoming
	}
	return Transaction{
		Amount:      amount,
		Description: description,
		Timestamp:   timestamp,
		Direction:   direction,
	}
}
