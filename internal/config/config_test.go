package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ANTHROPIC_API_KEY", "ASSISTANT_MODEL", "ASSISTANT_MAX_TOKENS",
	"USERSERVICE_URL", "BALANCEREADER_URL", "TRANSACTIONHISTORY_URL", "CONTACTS_URL",
	"DEMO_PASSWORD", "UPSTREAM_TIMEOUT", "UPSTREAM_MAX_RETRIES",
	"PORT", "LOG_LEVEL", "LOG_DEVELOPMENT", "SENTRY_DSN", "SENTRY_ENVIRONMENT",
}

func clearEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.Model.APIKey)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model.Name)
	assert.Equal(t, int64(2048), cfg.Model.MaxTokens)
	assert.Equal(t, "http://userservice:8080", cfg.Upstreams.UserServiceURL)
	assert.Equal(t, "http://balancereader:8080", cfg.Upstreams.BalanceReaderURL)
	assert.Equal(t, "http://transactionhistory:8080", cfg.Upstreams.TransactionHistoryURL)
	assert.Equal(t, "http://contacts:8080", cfg.Upstreams.ContactsURL)
	assert.Equal(t, "bankofanthos", cfg.Upstreams.DemoPassword)
	assert.Equal(t, 5*time.Second, cfg.Upstreams.Timeout)
	assert.Equal(t, 0, cfg.Upstreams.MaxRetries)
	assert.Equal(t, logger.InfoLevel, cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Empty(t, cfg.Sentry.DSN)
	assert.Equal(t, "production", cfg.Sentry.Environment)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("ASSISTANT_MAX_TOKENS", "512")
	t.Setenv("BALANCEREADER_URL", "http://localhost:9001")
	t.Setenv("UPSTREAM_TIMEOUT", "750ms")
	t.Setenv("UPSTREAM_MAX_RETRIES", "2")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Model.APIKey)
	assert.Equal(t, int64(512), cfg.Model.MaxTokens)
	assert.Equal(t, "http://localhost:9001", cfg.Upstreams.BalanceReaderURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Upstreams.Timeout)
	assert.Equal(t, 2, cfg.Upstreams.MaxRetries)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, logger.DebugLevel, cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"ASSISTANT_MAX_TOKENS", "lots"},
		{"ASSISTANT_MAX_TOKENS", "0"},
		{"UPSTREAM_TIMEOUT", "5"},
		{"UPSTREAM_TIMEOUT", "-1s"},
		{"UPSTREAM_MAX_RETRIES", "-1"},
		{"LOG_DEVELOPMENT", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	const key = "BANK_ASSISTANT_CONFIG_TEST"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	loaded := LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, []string{path}, loaded)
	assert.Equal(t, "from-file", os.Getenv(key))
}
