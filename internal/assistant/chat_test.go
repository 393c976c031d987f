package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/eshaffer321/bank-assistant-go/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChat_ModelNotConfigured(t *testing.T) {
	client, _ := newMockBank()

	reply := New(client, nil, nil).Chat(context.Background(), "hi", FallbackUserData("u"))

	assert.Equal(t, ChatUnavailable, reply)
}

func TestChat_ModelError(t *testing.T) {
	client, _ := newMockBank()
	model := &MockModel{}
	model.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("boom"))

	reply := New(client, model, nil).Chat(context.Background(), "hi", FallbackUserData("u"))

	assert.Equal(t, ChatFailed, reply)
}

func TestChat_PromptCarriesContext(t *testing.T) {
	client, _ := newMockBank()
	model := &MockModel{}
	var prompt string
	model.On("Generate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { prompt = args.String(1) }).
		Return("You spent $45.30 on coffee.", nil)

	a := New(client, model, nil, WithClock(fixedClock))
	reply := a.Chat(context.Background(), "How much on coffee?", FallbackUserData("u"))

	assert.Equal(t, "You spent $45.30 on coffee.", reply)
	assert.Contains(t, prompt, `The user has asked: "How much on coffee?"`)
	assert.Contains(t, prompt, "- Balance: $1250.75")
	assert.Contains(t, prompt, "- Total Transactions: 4")
	assert.Contains(t, prompt, "- This Month's Spending: $250.80")
	assert.Contains(t, prompt, "- This Month's Income: $2500.00")
	assert.Contains(t, prompt, "- 2024-01-15: Coffee Shop - $-45.30")
	assert.Contains(t, prompt, "- Bob Smith: Account 0987654321")
}

func TestChat_ListsTenMostRecent(t *testing.T) {
	data := &models.UserData{Username: "u"}
	for i := 0; i < 15; i++ {
		data.Transactions = append(data.Transactions, models.NewTransaction(
			decimal.NewFromInt(-1),
			fmt.Sprintf("Purchase %02d", i),
			"2024-01-01T00:00:00Z",
		))
	}

	client, _ := newMockBank()
	cd := New(client, nil, nil, WithClock(fixedClock)).chatData("q", data)

	require.Len(t, cd.Recent, ChatRecentTransactions)
	assert.Equal(t, "Purchase 00", cd.Recent[0].Description)
	assert.Equal(t, 15, cd.TransactionCount)
	assert.Equal(t, "15", cd.MonthSpent.String())
}

func TestSpendingAnalysis_Fallback(t *testing.T) {
	client, m := newMockBank()
	m.auth.On("Login", mock.Anything, "u").Return(nil, upstreamDown("userservice"))

	analysis := New(client, nil, nil).SpendingAnalysis(context.Background(), "u", "")

	assert.Equal(t, 3, analysis.TransactionCount)
	assert.InDelta(t, 250.80, analysis.TotalSpending, 0.001)
	assert.Equal(t, "Food & Dining", analysis.TopCategory)
	require.NotNil(t, analysis.LargestExpense)
	assert.Equal(t, "Grocery Store", analysis.LargestExpense.Description)
}
