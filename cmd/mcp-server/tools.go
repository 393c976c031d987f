package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/eshaffer321/bank-assistant-go/internal/analytics"
	"github.com/eshaffer321/bank-assistant-go/internal/assistant"
	"github.com/eshaffer321/bank-assistant-go/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// assistantTools implements all tool handlers on top of the assistant
type assistantTools struct {
	assistant *assistant.Assistant
}

// UserInput identifies the user; the token is optional
type UserInput struct {
	Username string `json:"username" jsonschema:"Bank username"`
	Token    string `json:"token,omitempty" jsonschema:"Bearer token for the upstream services (optional, a demo login is used when empty)"`
}

func (in UserInput) validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}

type TransactionEntry struct {
	Date        string  `json:"date" jsonschema:"Transaction date (YYYY-MM-DD)"`
	Description string  `json:"description" jsonschema:"Transaction description"`
	Amount      float64 `json:"amount" jsonschema:"Signed amount (negative for expenses)"`
	Direction   string  `json:"direction" jsonschema:"incoming or outgoing"`
}

type ExpenseEntry struct {
	Date        string  `json:"date" jsonschema:"Transaction date (YYYY-MM-DD)"`
	Description string  `json:"description" jsonschema:"Transaction description"`
	Amount      float64 `json:"amount" jsonschema:"Amount spent"`
	Category    string  `json:"category" jsonschema:"Spending category"`
}

type ContactEntry struct {
	Label      string `json:"label" jsonschema:"Contact name"`
	AccountNum string `json:"accountNum" jsonschema:"Contact account number"`
}

// GetUserData tool - balance, transactions and contacts
type GetUserDataOutput struct {
	Username       string             `json:"username" jsonschema:"Bank username"`
	Balance        float64            `json:"balance" jsonschema:"Current balance"`
	Currency       string             `json:"currency" jsonschema:"Balance currency"`
	Transactions   []TransactionEntry `json:"transactions" jsonschema:"Most recent transactions"`
	Contacts       []ContactEntry     `json:"contacts" jsonschema:"Saved contacts"`
	FallbackFields []string           `json:"fallbackFields,omitempty" jsonschema:"Fields filled with demo data because an upstream service failed"`
}

func (t *assistantTools) GetUserData(ctx context.Context, req *mcp.CallToolRequest, input UserInput) (*mcp.CallToolResult, GetUserDataOutput, error) {
	if err := input.validate(); err != nil {
		return nil, GetUserDataOutput{}, err
	}

	data := t.assistant.UserData(ctx, input.Username, input.Token)

	contacts := make([]ContactEntry, 0, len(data.Contacts))
	for _, c := range data.Contacts {
		contacts = append(contacts, ContactEntry{Label: c.Label, AccountNum: c.AccountNum})
	}

	return nil, GetUserDataOutput{
		Username:       data.Username,
		Balance:        data.Balance.Amount.InexactFloat64(),
		Currency:       data.Balance.Currency,
		Transactions:   toEntries(data.Transactions),
		Contacts:       contacts,
		FallbackFields: data.Fallbacks,
	}, nil
}

// GetInsights tool - AI report with analytics
type GetInsightsOutput struct {
	ReportID       string                    `json:"reportId" jsonschema:"Report identifier (ULID)"`
	Insights       string                    `json:"insights" jsonschema:"Written financial report"`
	Analytics      *analytics.Analytics      `json:"analytics,omitempty" jsonschema:"Derived analytics (absent when the model is unavailable)"`
	Visualizations *analytics.Visualizations `json:"visualizations,omitempty" jsonschema:"Chart-ready data"`
	Summary        *analytics.Summary        `json:"summary,omitempty" jsonschema:"Headline figures"`
}

func (t *assistantTools) GetInsights(ctx context.Context, req *mcp.CallToolRequest, input UserInput) (*mcp.CallToolResult, GetInsightsOutput, error) {
	if err := input.validate(); err != nil {
		return nil, GetInsightsOutput{}, err
	}

	data := t.assistant.UserData(ctx, input.Username, input.Token)
	report := t.assistant.Insights(ctx, data)

	return nil, GetInsightsOutput{
		ReportID:       report.ID,
		Insights:       report.Insights,
		Analytics:      report.Analytics,
		Visualizations: report.Visualizations,
		Summary:        report.Summary,
	}, nil
}

// Chat tool - single question about the user's finances
type ChatInput struct {
	Username string `json:"username" jsonschema:"Bank username"`
	Message  string `json:"message" jsonschema:"Question for the assistant"`
	Token    string `json:"token,omitempty" jsonschema:"Bearer token for the upstream services (optional)"`
}

type ChatOutput struct {
	Reply string `json:"reply" jsonschema:"Assistant reply"`
}

func (t *assistantTools) Chat(ctx context.Context, req *mcp.CallToolRequest, input ChatInput) (*mcp.CallToolResult, ChatOutput, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, ChatOutput{}, fmt.Errorf("message and username required")
	}

	data := t.assistant.UserData(ctx, input.Username, input.Token)

	return nil, ChatOutput{Reply: t.assistant.Chat(ctx, input.Message, data)}, nil
}

// GetSpendingAnalysis tool - breakdown of outgoing transactions
type GetSpendingAnalysisOutput struct {
	TotalSpending    float64            `json:"totalSpending" jsonschema:"Sum of all expenses"`
	TransactionCount int                `json:"transactionCount" jsonschema:"Number of expenses"`
	AverageExpense   float64            `json:"averageExpense" jsonschema:"Mean expense amount"`
	LargestExpense   *ExpenseEntry      `json:"largestExpense,omitempty" jsonschema:"Largest single expense"`
	ByCategory       map[string]float64 `json:"byCategory" jsonschema:"Spending per category"`
	ByMonth          map[string]float64 `json:"byMonth" jsonschema:"Spending per month (YYYY-MM)"`
	TopCategory      string             `json:"topCategory" jsonschema:"Category with the most spending"`
	RecurringPayees  map[string]int     `json:"recurringPayees" jsonschema:"Contacts paid more than once, with payment counts"`
}

func (t *assistantTools) GetSpendingAnalysis(ctx context.Context, req *mcp.CallToolRequest, input UserInput) (*mcp.CallToolResult, GetSpendingAnalysisOutput, error) {
	if err := input.validate(); err != nil {
		return nil, GetSpendingAnalysisOutput{}, err
	}

	analysis := t.assistant.SpendingAnalysis(ctx, input.Username, input.Token)

	output := GetSpendingAnalysisOutput{
		TotalSpending:    analysis.TotalSpending,
		TransactionCount: analysis.TransactionCount,
		AverageExpense:   analysis.AverageExpense,
		ByCategory:       analysis.ByCategory,
		ByMonth:          analysis.ByMonth,
		TopCategory:      analysis.TopCategory,
		RecurringPayees:  analysis.RecurringPayees,
	}
	if largest := analysis.LargestExpense; largest != nil {
		output.LargestExpense = &ExpenseEntry{
			Date:        largest.Date,
			Description: largest.Description,
			Amount:      largest.Amount,
			Category:    largest.Category,
		}
	}

	return nil, output, nil
}

func toEntries(txns []models.Transaction) []TransactionEntry {
	entries := make([]TransactionEntry, 0, len(txns))
	for _, txn := range txns {
		entries = append(entries, toEntry(txn))
	}
	return entries
}

func toEntry(txn models.Transaction) TransactionEntry {
	return TransactionEntry{
		Date:        txn.Date(),
		Description: txn.Description,
		Amount:      txn.Amount.InexactFloat64(),
		Direction:   string(txn.Direction),
	}
}
