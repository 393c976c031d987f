// Package config reads the service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/genai"
	"github.com/eshaffer321/bank-assistant-go/internal/logger"
	"github.com/eshaffer321/bank-assistant-go/internal/types"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const DefaultDemoPassword = "bankofanthos"

// Config is the complete service configuration
type Config struct {
	Server    ServerConfig
	Model     ModelConfig
	Upstreams UpstreamConfig
	Log       LogConfig
	Sentry    SentryConfig
}

type ServerConfig struct {
	Port string
}

// ModelConfig configures the generative model. An empty APIKey disables it.
type ModelConfig struct {
	APIKey    string
	Name      string
	MaxTokens int64
}

type UpstreamConfig struct {
	UserServiceURL        string
	BalanceReaderURL      string
	TransactionHistoryURL string
	ContactsURL           string
	DemoPassword          string
	Timeout               time.Duration
	MaxRetries            int
}

type LogConfig struct {
	Level       logger.LogLevel
	Development bool
}

// SentryConfig enables error reporting when DSN is set
type SentryConfig struct {
	DSN         string
	Environment string
}

// LoadEnvFiles loads .env files into the environment. Missing files are skipped and
// variables already set are never overridden.
func LoadEnvFiles(paths ...string) []string {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var loaded []string
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			loaded = append(loaded, p)
		}
	}
	return loaded
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	maxTokens, err := intEnv("ASSISTANT_MAX_TOKENS", genai.DefaultMaxTokens)
	if err != nil {
		return nil, err
	}
	if maxTokens <= 0 {
		return nil, errors.Errorf("ASSISTANT_MAX_TOKENS must be positive, got %d", maxTokens)
	}

	timeout, err := durationEnv("UPSTREAM_TIMEOUT", types.DefaultTimeout)
	if err != nil {
		return nil, err
	}

	maxRetries, err := intEnv("UPSTREAM_MAX_RETRIES", 0)
	if err != nil {
		return nil, err
	}
	if maxRetries < 0 {
		return nil, errors.Errorf("UPSTREAM_MAX_RETRIES must not be negative, got %d", maxRetries)
	}

	development, err := boolEnv("LOG_DEVELOPMENT", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port: stringEnv("PORT", "8080"),
		},
		Model: ModelConfig{
			APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
			Name:      stringEnv("ASSISTANT_MODEL", genai.DefaultModel),
			MaxTokens: int64(maxTokens),
		},
		Upstreams: UpstreamConfig{
			UserServiceURL:        stringEnv("USERSERVICE_URL", types.DefaultUserServiceURL),
			BalanceReaderURL:      stringEnv("BALANCEREADER_URL", types.DefaultBalanceReaderURL),
			TransactionHistoryURL: stringEnv("TRANSACTIONHISTORY_URL", types.DefaultTransactionHistoryURL),
			ContactsURL:           stringEnv("CONTACTS_URL", types.DefaultContactsURL),
			DemoPassword:          stringEnv("DEMO_PASSWORD", DefaultDemoPassword),
			Timeout:               timeout,
			MaxRetries:            maxRetries,
		},
		Log: LogConfig{
			Level:       logger.LogLevel(stringEnv("LOG_LEVEL", string(logger.InfoLevel))),
			Development: development,
		},
		Sentry: SentryConfig{
			DSN:         os.Getenv("SENTRY_DSN"),
			Environment: stringEnv("SENTRY_ENVIRONMENT", "production"),
		},
	}, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func stringEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "invalid %s", key)
	}
	return b, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	if d <= 0 {
		return 0, errors.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
