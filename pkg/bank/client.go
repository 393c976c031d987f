package bank

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/auth"
	"github.com/eshaffer321/bank-assistant-go/internal/transport"
	internalTypes "github.com/eshaffer321/bank-assistant-go/internal/types"
	"github.com/getsentry/sentry-go"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	// DefaultTimeout is the per-call upstream timeout
	DefaultTimeout = internalTypes.DefaultTimeout

	// DefaultDemoPassword is the password used for demo logins
	DefaultDemoPassword = "bankofanthos"
)

// Client talks to the user, balance, transaction-history and contacts services
type Client struct {
	// Service interfaces
	Auth         AuthService
	Balances     BalanceService
	Transactions TransactionService
	Contacts     ContactService

	// Internal fields
	options           *ClientOptions
	userTransport     Transport
	balanceTransport  Transport
	historyTransport  Transport
	contactsTransport Transport
}

// ClientOptions configures the client
type ClientOptions struct {
	// UserServiceURL is the user service base URL
	UserServiceURL string

	// BalanceReaderURL is the balance reader base URL
	BalanceReaderURL string

	// TransactionHistoryURL is the transaction history base URL
	TransactionHistoryURL string

	// ContactsURL is the contacts service base URL
	ContactsURL string

	// DemoPassword is sent on demo logins
	DemoPassword string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the per-call timeout. A supplied HTTPClient is copied, never modified.
	Timeout time.Duration

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior; nil means no retries
	RetryConfig *internalTypes.RetryConfig

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger = internalTypes.Logger

// RetryConfig configures retry behavior
type RetryConfig = internalTypes.RetryConfig

// Hooks provides lifecycle hooks for upstream requests
type Hooks = internalTypes.Hooks

// Transport handles HTTP communication with one upstream service
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, token string, result interface{}) error
	Service() string
}

// NewClient creates a new bank client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}
		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}
		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}
		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	// Set defaults
	if opts.UserServiceURL == "" {
		opts.UserServiceURL = internalTypes.DefaultUserServiceURL
	}
	if opts.BalanceReaderURL == "" {
		opts.BalanceReaderURL = internalTypes.DefaultBalanceReaderURL
	}
	if opts.TransactionHistoryURL == "" {
		opts.TransactionHistoryURL = internalTypes.DefaultTransactionHistoryURL
	}
	if opts.ContactsURL == "" {
		opts.ContactsURL = internalTypes.DefaultContactsURL
	}
	if opts.DemoPassword == "" {
		opts.DemoPassword = DefaultDemoPassword
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = cleanhttp.DefaultPooledClient()
		opts.HTTPClient.Timeout = DefaultTimeout
	}
	if opts.Timeout > 0 {
		// Work on a copy so a caller-supplied client keeps its own timeout
		httpClient := *opts.HTTPClient
		httpClient.Timeout = opts.Timeout
		opts.HTTPClient = &httpClient
	}

	newTransport := func(service, baseURL string) Transport {
		return transport.NewRESTTransport(&transport.Options{
			Service:     service,
			BaseURL:     baseURL,
			HTTPClient:  opts.HTTPClient,
			RetryConfig: opts.RetryConfig,
			Logger:      opts.Logger,
			Hooks:       opts.Hooks,
		})
	}

	c := &Client{
		options:           opts,
		userTransport:     newTransport("userservice", opts.UserServiceURL),
		balanceTransport:  newTransport("balancereader", opts.BalanceReaderURL),
		historyTransport:  newTransport("transactionhistory", opts.TransactionHistoryURL),
		contactsTransport: newTransport("contacts", opts.ContactsURL),
	}

	c.initServices()

	return c, nil
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Auth = newAuthService(c)
	c.Balances = &balanceService{client: c}
	c.Transactions = &transactionService{client: c}
	c.Contacts = &contactService{client: c}
}

// get executes a GET against t and reports failures to Sentry
func (c *Client) get(ctx context.Context, t Transport, path string, query url.Values, token string, result interface{}) error {
	start := time.Now()
	err := t.Get(ctx, path, query, token, result)
	duration := time.Since(start)

	if err != nil {
		capture := func(hub *sentry.Hub) {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("upstream.service", t.Service())
				scope.SetContext("upstream", map[string]interface{}{
					"path":     path,
					"duration": duration.String(),
				})
				hub.CaptureException(err)
			})
		}
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			capture(hub)
		} else {
			capture(sentry.CurrentHub())
		}
	}

	return err
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}

// newAuthService wires the internal auth service to the user service transport
func newAuthService(c *Client) *authService {
	return &authService{
		client:  c,
		service: auth.NewService(c.userTransport, c.options.DemoPassword, c.options.Logger),
	}
}
