package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/api"
	"github.com/eshaffer321/bank-assistant-go/internal/assistant"
	"github.com/eshaffer321/bank-assistant-go/pkg/bank"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTarget runs the real router with every upstream failing
func newTarget(t *testing.T) string {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)

	client, err := bank.NewClient(&bank.ClientOptions{
		UserServiceURL:        upstream.URL,
		BalanceReaderURL:      upstream.URL,
		TransactionHistoryURL: upstream.URL,
		ContactsURL:           upstream.URL,
	})
	require.NoError(t, err)

	a := assistant.New(client, nil, zap.NewNop())
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(a, nil), zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestValidator_AllChecksPass(t *testing.T) {
	config := &ValidatorConfig{
		BaseURL:     newTarget(t),
		Username:    "testuser",
		Timeout:     5 * time.Second,
		ChecksToRun: DefaultChecks(),
	}

	report := NewValidator(config, http.DefaultClient).Run(context.Background())

	for _, result := range report.Results {
		assert.True(t, result.Passed, "%s: %s", result.Check, result.Error)
	}
	assert.Equal(t, len(DefaultChecks()), report.TotalTests)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 100.0, report.SuccessRate)
}

func TestValidator_UnknownCheck(t *testing.T) {
	config := &ValidatorConfig{BaseURL: "http://127.0.0.1:1", ChecksToRun: []string{"bogus"}}

	report := NewValidator(config, http.DefaultClient).Run(context.Background())

	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Passed)
	assert.Equal(t, "unknown check", report.Results[0].Error)
	assert.Equal(t, 1, report.Failed)
}

func TestValidator_DetectsMissingCharts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"insights":"x","analytics":{},"summary":{},"visualizations":{"category_pie_chart":{}}}`))
	}))
	defer srv.Close()

	config := &ValidatorConfig{BaseURL: srv.URL, Username: "u", ChecksToRun: []string{"insights"}}
	report := NewValidator(config, http.DefaultClient).Run(context.Background())

	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Passed)
	assert.Contains(t, report.Results[0].Error, "monthly_spending_chart")
}

func TestValidator_UnreachableTarget(t *testing.T) {
	config := &ValidatorConfig{BaseURL: "http://127.0.0.1:1", ChecksToRun: []string{"health"}}

	report := NewValidator(config, http.DefaultClient).Run(context.Background())

	assert.Equal(t, 1, report.Failed)
	assert.NotEmpty(t, report.Results[0].Error)
}
