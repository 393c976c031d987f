package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/types"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	authHeaderKey = "Authorization"
	contentType   = "application/json"
)

// RESTTransport performs JSON GET requests against one upstream service.
// It holds no per-user state, so a single instance is shared by all requests.
type RESTTransport struct {
	service     string
	baseURL     string
	retryClient *retryablehttp.Client
	headers     map[string]string
	logger      types.Logger
	hooks       *types.Hooks
}

// Options for REST transport
type Options struct {
	// Service names the upstream in errors and logs
	Service     string
	BaseURL     string
	HTTPClient  *http.Client
	Timeout     time.Duration
	Headers     map[string]string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// NewRESTTransport creates a new REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = cleanhttp.DefaultPooledClient()
		opts.HTTPClient.Timeout = types.DefaultTimeout
	}
	if opts.Timeout > 0 {
		httpClient := *opts.HTTPClient
		httpClient.Timeout = opts.Timeout
		opts.HTTPClient = &httpClient
	}

	// Retries are off unless configured; non-2xx responses are handed back as-is
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = opts.HTTPClient
	retryClient.RetryMax = 0
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	if opts.RetryConfig != nil {
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		if opts.RetryConfig.RetryWait > 0 {
			retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		}
		if opts.RetryConfig.MaxWait > 0 {
			retryClient.RetryWaitMax = opts.RetryConfig.MaxWait
		}
	}
	if opts.Logger != nil {
		retryClient.Logger = &retryLogger{logger: opts.Logger}
	}

	headers := map[string]string{
		"Accept":     contentType,
		"User-Agent": types.UserAgent,
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &RESTTransport{
		service:     opts.Service,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		retryClient: retryClient,
		headers:     headers,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}
}

// Service returns the upstream name this transport talks to
func (t *RESTTransport) Service() string {
	return t.service
}

// Get issues a GET to path and decodes the JSON body into result.
// An empty token sends no Authorization header.
func (t *RESTTransport) Get(ctx context.Context, path string, query url.Values, token string, result interface{}) error {
	endpoint := t.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}
	if token != "" {
		httpReq.Header.Set(authHeaderKey, "Bearer "+token)
	}

	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq.Request)
	}

	if t.logger != nil {
		t.logger.Debug("Upstream request", "service", t.service, "path", path)
	}

	start := time.Now()
	resp, err := t.retryClient.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		err = t.wrapTransportError(err)
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return err
	}
	defer resp.Body.Close()

	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s response", t.service)
	}

	if t.logger != nil {
		t.logger.Debug("Upstream response", "service", t.service, "status", resp.StatusCode, "duration", duration, "size", len(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := t.handleHTTPError(resp.StatusCode, respBody)
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.Wrapf(err, "failed to parse %s response", t.service)
		}
	}

	return nil
}

// wrapTransportError classifies network level failures
func (t *RESTTransport) wrapTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &types.Error{
			Code:    "TIMEOUT",
			Message: fmt.Sprintf("%s: %v", t.service, err),
			Service: t.service,
			Err:     types.ErrTimeout,
		}
	}
	return errors.Wrapf(err, "%s request failed", t.service)
}

// handleHTTPError handles HTTP errors
func (t *RESTTransport) handleHTTPError(statusCode int, body []byte) error {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &errResp)

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &types.Error{
			Code:       "NOT_AUTHENTICATED",
			Message:    fmt.Sprintf("%s rejected credentials: %d", t.service, statusCode),
			StatusCode: statusCode,
			Service:    t.service,
			Err:        types.ErrNotAuthenticated,
		}
	case http.StatusNotFound:
		return &types.Error{
			Code:       "NOT_FOUND",
			Message:    fmt.Sprintf("%s: resource not found", t.service),
			StatusCode: statusCode,
			Service:    t.service,
			Err:        types.ErrNotFound,
		}
	case http.StatusTooManyRequests:
		return &types.Error{
			Code:       "RATE_LIMITED",
			Message:    fmt.Sprintf("%s: rate limited", t.service),
			StatusCode: statusCode,
			Service:    t.service,
			Err:        types.ErrRateLimited,
		}
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return &types.Error{
			Code:       "TIMEOUT",
			Message:    fmt.Sprintf("%s: request timeout (%d)", t.service, statusCode),
			StatusCode: statusCode,
			Service:    t.service,
			Err:        types.ErrTimeout,
		}
	case http.StatusBadRequest:
		return &types.Error{
			Code:       "BAD_REQUEST",
			Message:    msg,
			StatusCode: statusCode,
			Service:    t.service,
		}
	default:
		if statusCode >= 500 {
			baseMsg := fmt.Sprintf("%s server error: %d", t.service, statusCode)
			if desc := httpStatusDescription(statusCode); desc != "" {
				baseMsg = fmt.Sprintf("%s server error: %d (%s)", t.service, statusCode, desc)
			}
			if msg != "" {
				baseMsg = fmt.Sprintf("%s: %s", baseMsg, msg)
			}

			return &types.Error{
				Code:       "SERVER_ERROR",
				Message:    baseMsg,
				StatusCode: statusCode,
				Service:    t.service,
				Err:        types.ErrServerError,
			}
		}
		return &types.Error{
			Code:       "HTTP_ERROR",
			Message:    fmt.Sprintf("%s HTTP error: %d", t.service, statusCode),
			StatusCode: statusCode,
			Service:    t.service,
		}
	}
}

// httpStatusDescription returns a human-readable description for common HTTP status codes.
func httpStatusDescription(statusCode int) string {
	descriptions := map[int]string{
		500: "Internal Server Error",
		501: "Not Implemented",
		502: "Bad Gateway",
		503: "Service Unavailable",
		504: "Gateway Timeout",
	}
	return descriptions[statusCode]
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
