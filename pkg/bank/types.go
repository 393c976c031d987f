package bank

import (
	"encoding/json"

	internalTypes "github.com/eshaffer321/bank-assistant-go/internal/types"
	"github.com/shopspring/decimal"
)

// Session carries the bearer token and account number for upstream calls
type Session = internalTypes.Session

// Balance is an account balance as reported by the balance reader
type Balance struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

// Amount returns the balance in major units
func (b *Balance) Amount() decimal.Decimal {
	return decimal.New(b.Cents, -2)
}

// Transaction is a ledger entry as reported by the transaction history service
type Transaction struct {
	TransactionID  json.Number `json:"transactionId,omitempty"`
	Type           string      `json:"type,omitempty"`
	FromAccountNum string      `json:"fromAccountNum"`
	FromRoutingNum string      `json:"fromRoutingNum,omitempty"`
	ToAccountNum   string      `json:"toAccountNum"`
	ToRoutingNum   string      `json:"toRoutingNum,omitempty"`
	Amount         int64       `json:"amount"`
	Timestamp      string      `json:"timestamp"`
}

// Dollars returns the unsigned amount in major units
func (t *Transaction) Dollars() decimal.Decimal {
	return decimal.New(t.Amount, -2).Abs()
}

// IsIncomingFor reports whether the transaction credits accountID
func (t *Transaction) IsIncomingFor(accountID string) bool {
	return t.ToAccountNum == accountID
}

// Counterparty returns the other side's account number relative to accountID
func (t *Transaction) Counterparty(accountID string) string {
	if t.IsIncomingFor(accountID) {
		return orUnknown(t.FromAccountNum)
	}
	return orUnknown(t.ToAccountNum)
}

// Contact is a saved payee
type Contact struct {
	Label      string `json:"label"`
	AccountNum string `json:"account_num"`
	RoutingNum string `json:"routing_num,omitempty"`
	IsExternal *bool  `json:"is_external,omitempty"`
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
