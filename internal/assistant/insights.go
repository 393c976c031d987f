package assistant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/analytics"
	"github.com/eshaffer321/bank-assistant-go/internal/models"
	"github.com/getsentry/sentry-go"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	InsightsUnavailable = "AI insights are currently unavailable. Please check configuration."
	InsightsFailed      = "I'm having trouble analyzing your financial data right now. Please try again later."
)

// InsightReport is the result of an insights request. Nil bundles mean the model was
// unavailable; they serialize as empty objects.
type InsightReport struct {
	ID             string
	Username       string
	Insights       string
	Analytics      *analytics.Analytics
	Visualizations *analytics.Visualizations
	Summary        *analytics.Summary
	Timestamp      time.Time
}

// MarshalJSON renders missing bundles as {}
func (r InsightReport) MarshalJSON() ([]byte, error) {
	empty := struct{}{}
	out := struct {
		Username       string      `json:"username"`
		ID             string      `json:"id"`
		Insights       string      `json:"insights"`
		Analytics      interface{} `json:"analytics"`
		Visualizations interface{} `json:"visualizations"`
		Summary        interface{} `json:"summary"`
		Timestamp      string      `json:"timestamp"`
	}{
		Username:       r.Username,
		ID:             r.ID,
		Insights:       r.Insights,
		Analytics:      empty,
		Visualizations: empty,
		Summary:        empty,
		Timestamp:      r.Timestamp.UTC().Format(time.RFC3339),
	}

	if r.Analytics != nil {
		out.Analytics = r.Analytics
	}
	if r.Visualizations != nil {
		out.Visualizations = r.Visualizations
	}
	if r.Summary != nil {
		out.Summary = r.Summary
	}

	return json.Marshal(out)
}

// Insights analyzes the user's data and asks the model for a written report
func (a *Assistant) Insights(ctx context.Context, data *models.UserData) *InsightReport {
	now := a.now()
	report := &InsightReport{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Username:  data.Username,
		Timestamp: now,
	}

	if a.model == nil {
		report.Insights = InsightsUnavailable
		return report
	}

	result := analytics.Analyze(data.Transactions, data.Balance.Amount)

	prompt, err := a.prompts.InsightsPrompt(result)
	if err == nil {
		report.Insights, err = a.model.Generate(ctx, prompt)
	}
	if err != nil {
		a.logger.Error("Error generating insights",
			zap.String("username", data.Username),
			zap.String("report_id", report.ID),
			zap.Error(err),
		)
		a.capture(ctx, "insights", err)
		report.Insights = InsightsFailed
		return report
	}

	report.Analytics = result
	report.Visualizations = analytics.Visualize(result)
	report.Summary = analytics.Summarize(result)

	return report
}

func (a *Assistant) capture(ctx context.Context, operation string, err error) {
	h := hub(ctx)
	h.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("assistant.operation", operation)
		h.CaptureException(err)
	})
}
