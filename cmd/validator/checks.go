package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const placeholderToken = "validator-token"

// requiredCharts are the chart keys an insights response must carry
var requiredCharts = []string{
	"monthly_spending_chart",
	"monthly_income_chart",
	"category_pie_chart",
	"income_vs_expense_chart",
	"financial_health_gauge",
}

type checkFunc func(ctx context.Context, v *Validator) (int, map[string]interface{}, error)

var checks = map[string]checkFunc{
	"health":                 checkHealth,
	"ready":                  checkReady,
	"insights":               checkInsights,
	"chat":                   checkChat,
	"chat_validation":        checkChatValidation,
	"spending_analysis_auth": checkSpendingAuth,
	"spending_analysis":      checkSpending,
}

// DefaultChecks returns every check in run order
func DefaultChecks() []string {
	return []string{
		"health",
		"ready",
		"insights",
		"chat",
		"chat_validation",
		"spending_analysis_auth",
		"spending_analysis",
	}
}

// Validator runs smoke checks against a running assistant
type Validator struct {
	config *ValidatorConfig
	client *http.Client
}

// NewValidator creates a new validator
func NewValidator(config *ValidatorConfig, client *http.Client) *Validator {
	return &Validator{
		config: config,
		client: client,
	}
}

// Run executes the configured checks
func (v *Validator) Run(ctx context.Context) *ValidationReport {
	report := &ValidationReport{
		Timestamp: time.Now(),
		BaseURL:   v.config.BaseURL,
		Results:   make([]ValidationResult, 0, len(v.config.ChecksToRun)),
	}

	for _, name := range v.config.ChecksToRun {
		if v.config.Verbose {
			fmt.Printf("Checking %s...\n", name)
		}

		result := v.runCheck(ctx, name)
		report.Results = append(report.Results, result)

		if result.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}

	report.TotalTests = len(report.Results)
	if report.TotalTests > 0 {
		report.SuccessRate = float64(report.Passed) / float64(report.TotalTests) * 100
	}

	return report
}

func (v *Validator) runCheck(ctx context.Context, name string) ValidationResult {
	start := time.Now()
	result := ValidationResult{Check: name}

	check, ok := checks[name]
	if !ok {
		result.Error = "unknown check"
		return result
	}

	status, body, err := check(ctx, v)
	result.Status = status
	result.Duration = time.Since(start)
	if v.config.Verbose {
		result.Response = body
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Passed = true
	return result
}

func (v *Validator) do(ctx context.Context, method, path string, body interface{}, token string) (int, map[string]interface{}, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, v.config.BaseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	return resp.StatusCode, decoded, nil
}

func expectStatus(got, want int) error {
	if got != want {
		return fmt.Errorf("expected status %d, got %d", want, got)
	}
	return nil
}

func requireKeys(body map[string]interface{}, keys ...string) error {
	for _, key := range keys {
		if _, ok := body[key]; !ok {
			return fmt.Errorf("missing key %q", key)
		}
	}
	return nil
}

func checkHealth(ctx context.Context, v *Validator) (int, map[string]interface{}, error) {
	status, body, err := v.do(ctx, http.MethodGet, "/health", nil, "")
	if err != nil {
		return status, body, err
	}
	if err := expectStatus(status, http.StatusOK); err != nil {
		return status, body, err
	}
	if body["status"] != "healthy" {
		return status, body, fmt.Errorf("unexpected status %v", body["status"])
	}
	return status, body, nil
}

func checkReady(ctx context.Context, v *Validator) (int, map[string]interface{}, error) {
	status, body, err := v.do(ctx, http.MethodGet, "/ready", nil, "")
	if err != nil {
		return status, body, err
	}
	if err := expectStatus(status, http.StatusOK); err != nil {
		return status, body, err
	}
	return status, body, requireKeys(body, "status", "model_configured")
}

func checkInsights(ctx context.Context, v *Validator) (int, map[string]interface{}, error) {
	status, body, err := v.do(ctx, http.MethodGet, "/insights/"+v.config.Username, nil, "")
	if err != nil {
		return status, body, err
	}
	if err := expectStatus(status, http.StatusOK); err != nil {
		return status, body, err
	}
	if err := requireKeys(body, "insights", "analytics", "summary", "visualizations"); err != nil {
		return status, body, err
	}

	// Charts are only present when the model produced a report
	visualizations, _ := body["visualizations"].(map[string]interface{})
	if len(visualizations) > 0 {
		if err := requireKeys(visualizations, requiredCharts...); err != nil {
			return status, body, err
		}
	}
	return status, body, nil
}

func checkChat(ctx context.Context, v *Validator) (int, map[string]interface{}, error) {
	request := map[string]string{
		"username": v.config.Username,
		"message":  "What is my current balance?",
	}
	status, body, err := v.do(ctx, http.MethodPost, "/chat", request, "")
	if err != nil {
		return status, body, err
	}
	if err := expectStatus(status, http.StatusOK); err != nil {
		return status, body, err
	}
	return status, body, requireKeys(body, "ai_response", "user_message", "timestamp")
}

func checkChatValidation(ctx context.Context, v *Validator) (int, map[string]interface{}, error) {
	status, body, err := v.do(ctx, http.MethodPost, "/chat", map[string]string{"username": v.config.Username}, "")
	if err != nil {
		return status, body, err
	}
	return status, body, expectStatus(status, http.StatusBadRequest)
}

func checkSpendingAuth(ctx context.Context, v *Validator) (int, map[string]interface{}, error) {
	status, body, err := v.do(ctx, http.MethodGet, "/spending-analysis/"+v.config.Username, nil, "")
	if err != nil {
		return status, body, err
	}
	return status, body, expectStatus(status, http.StatusUnauthorized)
}

func checkSpending(ctx context.Context, v *Validator) (int, map[string]interface{}, error) {
	token := v.config.Token
	if token == "" {
		token = placeholderToken
	}

	status, body, err := v.do(ctx, http.MethodGet, "/spending-analysis/"+v.config.Username, nil, token)
	if err != nil {
		return status, body, err
	}
	if err := expectStatus(status, http.StatusOK); err != nil {
		return status, body, err
	}
	return status, body, requireKeys(body, "analysis")
}
