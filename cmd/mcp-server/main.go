package main

import (
	"context"
	"log"
	"strings"

	"github.com/eshaffer321/bank-assistant-go/internal/analytics"
	"github.com/eshaffer321/bank-assistant-go/internal/assistant"
	"github.com/eshaffer321/bank-assistant-go/internal/config"
	"github.com/eshaffer321/bank-assistant-go/internal/genai"
	"github.com/eshaffer321/bank-assistant-go/internal/logger"
	"github.com/eshaffer321/bank-assistant-go/internal/prompts"
	"github.com/eshaffer321/bank-assistant-go/pkg/bank"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Production zap config writes to stderr, leaving stdout to the transport
	zapLog, err := logger.New(false, cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()

	client, err := bank.NewClient(&bank.ClientOptions{
		UserServiceURL:        cfg.Upstreams.UserServiceURL,
		BalanceReaderURL:      cfg.Upstreams.BalanceReaderURL,
		TransactionHistoryURL: cfg.Upstreams.TransactionHistoryURL,
		ContactsURL:           cfg.Upstreams.ContactsURL,
		DemoPassword:          cfg.Upstreams.DemoPassword,
		Timeout:               cfg.Upstreams.Timeout,
		Logger:                logger.NewAdapter(zapLog.Named("bank")),
		SentryDSN:             cfg.Sentry.DSN,
	})
	if err != nil {
		log.Fatalf("failed to initialize bank client: %v", err)
	}
	defer client.Close()

	model := genai.New(genai.Config{
		APIKey:    cfg.Model.APIKey,
		Model:     cfg.Model.Name,
		MaxTokens: cfg.Model.MaxTokens,
	})

	loader := prompts.NewLoader()
	if err := loader.Preload(); err != nil {
		log.Fatalf("failed to load prompts: %v", err)
	}

	impl := &mcp.Implementation{
		Name:    "bank-assistant",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	registerTools(server, assistant.New(client, model, zapLog.Named("assistant"), assistant.WithPrompts(loader)))

	// Run server over stdio transport
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func registerTools(server *mcp.Server, a *assistant.Assistant) {
	tools := &assistantTools{assistant: a}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_insights",
		Description: "Generate an AI financial report for a user, with analytics, chart data and a summary including the financial health score (0-100).",
	}, tools.GetInsights)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat",
		Description: "Ask the banking assistant a question about a user's balance, transactions, spending or contacts. Each question is answered independently.",
	}, tools.Chat)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_spending_analysis",
		Description: "Break down a user's outgoing transactions by category and month, with the largest expense and recurring payees. Categories: " + categoryList() + ".",
	}, tools.GetSpendingAnalysis)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_user_data",
		Description: "Get a user's balance, recent transactions (up to 20) and saved contacts.",
	}, tools.GetUserData)
}

func categoryList() string {
	categories := analytics.Categories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
