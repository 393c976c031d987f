// Package genai wraps the generative model used for insights and chat.
package genai

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 2048
	DefaultTimeout   = 60 * time.Second
)

// ErrEmptyResponse is returned when the model replies without any text
var ErrEmptyResponse = errors.New("model returned an empty response")

// Model turns a prompt into text
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config configures the Anthropic-backed model
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
	Timeout   time.Duration
	BaseURL   string
}

// AnthropicModel calls the Anthropic Messages API
type AnthropicModel struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// New returns the configured model, or nil when no API key is set.
// A nil Model means the assistant answers with its fallback messages.
func New(cfg Config) Model {
	if cfg.APIKey == "" {
		return nil
	}
	return NewAnthropicModel(cfg)
}

// NewAnthropicModel builds a model client. Requests are never retried.
func NewAnthropicModel(cfg Config) *AnthropicModel {
	// Set defaults
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicModel{
		client:    anthropic.NewClient(opts...),
		model:     anthropic.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
	}
}

// Name returns the model identifier
func (m *AnthropicModel) Name() string {
	return string(m.model)
}

// Generate sends a single user turn and returns the concatenated text of the reply
func (m *AnthropicModel) Generate(ctx context.Context, prompt string) (string, error) {
	message, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     m.model,
		MaxTokens: m.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "model request failed")
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}
