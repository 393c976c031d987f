// Package assistant aggregates a user's banking data and turns it into insights and
// chat replies. Upstream or model failures never fail a request; they degrade to
// demo data or fixed apology messages.
package assistant

import (
	"context"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/genai"
	"github.com/eshaffer321/bank-assistant-go/internal/prompts"
	"github.com/eshaffer321/bank-assistant-go/pkg/bank"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const (
	// MaxTransactions caps how many history entries are kept per request
	MaxTransactions = 20
	// ChatRecentTransactions is how many transactions the chat prompt lists
	ChatRecentTransactions = 10
)

// Assistant serves insights, chat and spending analysis
type Assistant struct {
	bank    *bank.Client
	model   genai.Model
	prompts *prompts.Loader
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures an Assistant
type Option func(*Assistant)

// WithClock overrides the clock used for report ids and the current month
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) {
		a.now = now
	}
}

// WithPrompts overrides the prompt loader
func WithPrompts(loader *prompts.Loader) Option {
	return func(a *Assistant) {
		a.prompts = loader
	}
}

// New creates an assistant. A nil model means generative features are not configured.
func New(client *bank.Client, model genai.Model, logger *zap.Logger, opts ...Option) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Assistant{
		bank:    client,
		model:   model,
		prompts: prompts.NewLoader(),
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ModelConfigured reports whether a generative model is available
func (a *Assistant) ModelConfigured() bool {
	return a.model != nil
}

// hub returns the request-scoped Sentry hub, falling back to the global one
func hub(ctx context.Context) *sentry.Hub {
	if h := sentry.GetHubFromContext(ctx); h != nil {
		return h
	}
	return sentry.CurrentHub()
}
