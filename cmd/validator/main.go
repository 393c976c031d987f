package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// ValidatorConfig holds configuration for the validator
type ValidatorConfig struct {
	BaseURL     string
	Username    string
	Token       string
	OutputDir   string
	Timeout     time.Duration
	Verbose     bool
	ChecksToRun []string
}

// ValidationResult represents the result of a single check
type ValidationResult struct {
	Check    string        `json:"check"`
	Passed   bool          `json:"passed"`
	Status   int           `json:"status,omitempty"`
	Response interface{}   `json:"response,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// ValidationReport represents the full validation report
type ValidationReport struct {
	Timestamp   time.Time          `json:"timestamp"`
	BaseURL     string             `json:"base_url"`
	TotalTests  int                `json:"total_tests"`
	Passed      int                `json:"passed"`
	Failed      int                `json:"failed"`
	SuccessRate float64            `json:"success_rate"`
	Results     []ValidationResult `json:"results"`
}

func main() {
	config := parseFlags()

	// Create output directory
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	client := cleanhttp.DefaultClient()
	client.Timeout = config.Timeout

	validator := NewValidator(config, client)
	report := validator.Run(context.Background())

	// Save report
	reportPath := filepath.Join(config.OutputDir, fmt.Sprintf("validation_report_%d.json", time.Now().Unix()))
	if err := saveReport(report, reportPath); err != nil {
		log.Fatalf("Failed to save report: %v", err)
	}

	printSummary(report, reportPath)

	// Exit with non-zero if any check failed
	if report.Failed > 0 {
		os.Exit(1)
	}
}

func parseFlags() *ValidatorConfig {
	config := &ValidatorConfig{}

	flag.StringVar(&config.BaseURL, "url", envOr("AI_ASSISTANT_URL", "http://localhost:8080"), "Base URL of the assistant")
	flag.StringVar(&config.Username, "username", "testuser", "Username to query")
	flag.StringVar(&config.Token, "token", os.Getenv("AI_ASSISTANT_TOKEN"), "Bearer token for spending analysis (a placeholder is used when empty)")
	flag.StringVar(&config.OutputDir, "output", "./validation_results", "Output directory for results")
	flag.DurationVar(&config.Timeout, "timeout", 60*time.Second, "Per-request timeout")
	flag.BoolVar(&config.Verbose, "verbose", false, "Verbose output")

	checkList := flag.String("checks", "", "Comma-separated list of checks to run (empty for all)")

	flag.Parse()

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if *checkList != "" {
		config.ChecksToRun = strings.Split(*checkList, ",")
	} else {
		config.ChecksToRun = DefaultChecks()
	}

	return config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func saveReport(report *ValidationReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printSummary(report *ValidationReport, path string) {
	fmt.Println("\n=== Validation Report ===")
	fmt.Printf("Target: %s\n", report.BaseURL)
	fmt.Printf("Total Checks: %d\n", report.TotalTests)
	fmt.Printf("Passed: %d\n", report.Passed)
	fmt.Printf("Failed: %d\n", report.Failed)
	fmt.Printf("Success Rate: %.1f%%\n", report.SuccessRate)

	if report.Failed > 0 {
		fmt.Println("\nFailed Checks:")
		for _, result := range report.Results {
			if !result.Passed {
				fmt.Printf("  - %s: %s\n", result.Check, result.Error)
			}
		}
	}

	fmt.Printf("\nReport saved to: %s\n", path)
}
