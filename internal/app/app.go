// Package app wires the service together with fx.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/api"
	"github.com/eshaffer321/bank-assistant-go/internal/assistant"
	"github.com/eshaffer321/bank-assistant-go/internal/config"
	"github.com/eshaffer321/bank-assistant-go/internal/genai"
	"github.com/eshaffer321/bank-assistant-go/internal/logger"
	"github.com/eshaffer321/bank-assistant-go/internal/prompts"
	"github.com/eshaffer321/bank-assistant-go/pkg/bank"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// ConfigModule provides configuration and logging
var ConfigModule = fx.Module("config",
	fx.Provide(
		NewConfig,
		NewLogger,
	),
)

// ClientModule provides the upstream client and the generative model
var ClientModule = fx.Module("clients",
	fx.Provide(
		NewBankClient,
		NewModel,
	),
)

// AssistantModule provides the assistant
var AssistantModule = fx.Module("assistant",
	fx.Provide(
		NewPrompts,
		NewAssistant,
	),
)

// ServerModule provides the HTTP server and starts it with the application
var ServerModule = fx.Module("server",
	fx.Provide(
		NewHandler,
		NewRouter,
		NewServer,
	),
	fx.Invoke(
		startServer,
	),
)

// Module gathers every module of the service
var Module = fx.Options(
	ConfigModule,
	ClientModule,
	AssistantModule,
	ServerModule,
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),
)

// NewConfig loads .env files and reads the environment
func NewConfig() (*config.Config, error) {
	config.LoadEnvFiles()
	return config.Load()
}

// NewLogger builds the process logger and flushes it on shutdown
func NewLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log.Development, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}

// NewBankClient builds the upstream client. Sentry is initialized here when configured.
func NewBankClient(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*bank.Client, error) {
	opts := &bank.ClientOptions{
		UserServiceURL:        cfg.Upstreams.UserServiceURL,
		BalanceReaderURL:      cfg.Upstreams.BalanceReaderURL,
		TransactionHistoryURL: cfg.Upstreams.TransactionHistoryURL,
		ContactsURL:           cfg.Upstreams.ContactsURL,
		DemoPassword:          cfg.Upstreams.DemoPassword,
		Timeout:               cfg.Upstreams.Timeout,
		Logger:                logger.NewAdapter(log.Named("bank")),
		SentryDSN:             cfg.Sentry.DSN,
	}
	if cfg.Sentry.DSN != "" {
		opts.SentryOptions = &sentry.ClientOptions{Environment: cfg.Sentry.Environment}
	}
	if cfg.Upstreams.MaxRetries > 0 {
		opts.RetryConfig = &bank.RetryConfig{MaxRetries: cfg.Upstreams.MaxRetries}
	}

	client, err := bank.NewClient(opts)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.Close()
			return nil
		},
	})
	return client, nil
}

// NewModel returns the generative model, or nil when no API key is configured
func NewModel(cfg *config.Config, log *zap.Logger) genai.Model {
	if cfg.Model.APIKey == "" {
		log.Warn("ANTHROPIC_API_KEY not set, AI features will answer with fallback messages")
		return nil
	}

	model := genai.NewAnthropicModel(genai.Config{
		APIKey:    cfg.Model.APIKey,
		Model:     cfg.Model.Name,
		MaxTokens: cfg.Model.MaxTokens,
	})
	log.Info("Generative model configured", zap.String("model", model.Name()))
	return model
}

// NewPrompts parses the prompt templates up front
func NewPrompts() (*prompts.Loader, error) {
	loader := prompts.NewLoader()
	if err := loader.Preload(); err != nil {
		return nil, err
	}
	return loader, nil
}

// NewAssistant builds the assistant
func NewAssistant(client *bank.Client, model genai.Model, loader *prompts.Loader, log *zap.Logger) *assistant.Assistant {
	return assistant.New(client, model, log.Named("assistant"), assistant.WithPrompts(loader))
}

// NewHandler builds the HTTP handler
func NewHandler(a *assistant.Assistant, log *zap.Logger) *api.Handler {
	return api.NewHandler(a, log.Named("api"))
}

// NewRouter builds the gin engine
func NewRouter(cfg *config.Config, h *api.Handler, log *zap.Logger) *gin.Engine {
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(h, log.Named("http"))
}

// NewServer builds the HTTP server
func NewServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func startServer(lc fx.Lifecycle, srv *http.Server, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}

			log.Info("Server starting", zap.String("address", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server stopped unexpectedly", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Server stopping")
			return srv.Shutdown(ctx)
		},
	})
}
