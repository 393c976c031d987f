package assistant

import (
	"context"

	"github.com/eshaffer321/bank-assistant-go/internal/analytics"
)

// SpendingAnalysis fetches the user's data and breaks down outgoing transactions.
// It does not involve the model.
func (a *Assistant) SpendingAnalysis(ctx context.Context, username, token string) *analytics.SpendingAnalysis {
	data := a.UserData(ctx, username, token)
	return analytics.AnalyzeSpending(data.Transactions)
}
