package assistant

import (
	"context"

	"github.com/eshaffer321/bank-assistant-go/internal/analytics"
	"github.com/eshaffer321/bank-assistant-go/internal/models"
	"github.com/eshaffer321/bank-assistant-go/internal/prompts"
	"go.uber.org/zap"
)

const (
	ChatUnavailable = "AI chat is currently unavailable. Please check configuration."
	ChatFailed      = "I'm sorry, I'm having trouble understanding your request right now. Please try again."
)

// Chat answers a single question using the user's data as context. Each call is
// independent; nothing is remembered between messages.
func (a *Assistant) Chat(ctx context.Context, message string, data *models.UserData) string {
	if a.model == nil {
		return ChatUnavailable
	}

	prompt, err := a.prompts.ChatPrompt(a.chatData(message, data))
	if err == nil {
		var reply string
		reply, err = a.model.Generate(ctx, prompt)
		if err == nil {
			return reply
		}
	}

	a.logger.Error("Error in chat",
		zap.String("username", data.Username),
		zap.Error(err),
	)
	a.capture(ctx, "chat", err)
	return ChatFailed
}

func (a *Assistant) chatData(message string, data *models.UserData) prompts.ChatData {
	recent := data.Transactions
	if len(recent) > ChatRecentTransactions {
		recent = recent[:ChatRecentTransactions]
	}

	spent, received := analytics.MonthlyTotals(data.Transactions, a.now().UTC().Format("2006-01"))

	return prompts.ChatData{
		Message:          message,
		Balance:          data.Balance.Amount,
		TransactionCount: len(data.Transactions),
		MonthSpent:       spent,
		MonthReceived:    received,
		Recent:           recent,
		Contacts:         data.Contacts,
	}
}
