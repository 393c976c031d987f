package assistant

import (
	"github.com/eshaffer321/bank-assistant-go/internal/models"
	"github.com/eshaffer321/bank-assistant-go/internal/types"
	"github.com/shopspring/decimal"
)

// Field names reported in UserData.Fallbacks
const (
	FieldBalance      = "balance"
	FieldTransactions = "transactions"
	FieldContacts     = "contacts"
)

func fallbackBalance() models.Balance {
	return models.Balance{
		Amount:   decimal.RequireFromString("1250.75"),
		Currency: types.DefaultCurrency,
	}
}

func fallbackTransactions() []models.Transaction {
	return []models.Transaction{
		models.NewTransaction(decimal.RequireFromString("-45.30"), "Coffee Shop", "2024-01-15T10:30:00Z"),
		models.NewTransaction(decimal.RequireFromString("-120.00"), "Grocery Store", "2024-01-14T16:45:00Z"),
		models.NewTransaction(decimal.RequireFromString("2500.00"), "Salary Deposit", "2024-01-13T09:00:00Z"),
		models.NewTransaction(decimal.RequireFromString("-85.50"), "Gas Station", "2024-01-12T18:20:00Z"),
	}
}

func fallbackContacts() []models.Contact {
	return []models.Contact{
		{Label: "Alice Johnson", AccountNum: "1234567890"},
		{Label: "Bob Smith", AccountNum: "0987654321"},
	}
}

// FallbackUserData returns the demo dataset used when the user cannot be authenticated
func FallbackUserData(username string) *models.UserData {
	return &models.UserData{
		Username:     username,
		Balance:      fallbackBalance(),
		Transactions: fallbackTransactions(),
		Contacts:     fallbackContacts(),
		Fallbacks:    []string{FieldBalance, FieldTransactions, FieldContacts},
	}
}
