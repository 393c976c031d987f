package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHTTPError_ServerError_IncludesResponseBody(t *testing.T) {
	transport := &RESTTransport{service: "balancereader"}

	tests := []struct {
		name          string
		statusCode    int
		responseBody  []byte
		expectedInMsg string
	}{
		{
			name:          "500 with JSON error message",
			statusCode:    500,
			responseBody:  []byte(`{"error": "Internal server error", "message": "Database connection failed"}`),
			expectedInMsg: "Database connection failed",
		},
		{
			name:          "502 Bad Gateway with empty body",
			statusCode:    502,
			responseBody:  []byte{},
			expectedInMsg: "502 (Bad Gateway)",
		},
		{
			name:          "503 with plain text body",
			statusCode:    503,
			responseBody:  []byte(`Service temporarily unavailable`),
			expectedInMsg: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := transport.handleHTTPError(tt.statusCode, tt.responseBody)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedInMsg)
			assert.Contains(t, err.Error(), "balancereader")
			assert.True(t, errors.Is(err, types.ErrServerError))
		})
	}
}

func TestHandleHTTPError_Mapping(t *testing.T) {
	transport := &RESTTransport{service: "contacts"}

	tests := []struct {
		name       string
		statusCode int
		sentinel   error
		code       string
	}{
		{"401 unauthorized", http.StatusUnauthorized, types.ErrNotAuthenticated, "NOT_AUTHENTICATED"},
		{"403 forbidden", http.StatusForbidden, types.ErrNotAuthenticated, "NOT_AUTHENTICATED"},
		{"404 not found", http.StatusNotFound, types.ErrNotFound, "NOT_FOUND"},
		{"429 rate limited", http.StatusTooManyRequests, types.ErrRateLimited, "RATE_LIMITED"},
		{"504 gateway timeout", http.StatusGatewayTimeout, types.ErrTimeout, "TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := transport.handleHTTPError(tt.statusCode, nil)

			var apiErr *types.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			assert.Equal(t, "contacts", apiErr.Service)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestGet_DecodesBodyAndSendsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/balances/1011226111", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, types.UserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`125075`))
	}))
	defer server.Close()

	tr := NewRESTTransport(&Options{Service: "balancereader", BaseURL: server.URL + "/"})

	var cents int64
	err := tr.Get(context.Background(), "/balances/1011226111", nil, "tok-123", &cents)

	require.NoError(t, err)
	assert.Equal(t, int64(125075), cents)
	assert.Equal(t, "balancereader", tr.Service())
}

func TestGet_EncodesQueryAndOmitsEmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alice", r.URL.Query().Get("username"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	}))
	defer server.Close()

	tr := NewRESTTransport(&Options{Service: "userservice", BaseURL: server.URL})

	var out struct {
		Token string `json:"token"`
	}
	err := tr.Get(context.Background(), "/login", url.Values{"username": {"alice"}}, "", &out)

	require.NoError(t, err)
	assert.Equal(t, "abc", out.Token)
}

func TestGet_ServerErrorIsNotRetriedByDefault(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var hookErr error
	tr := NewRESTTransport(&Options{
		Service: "transactionhistory",
		BaseURL: server.URL,
		Hooks: &types.Hooks{
			OnError: func(ctx context.Context, err error) { hookErr = err },
		},
	})

	err := tr.Get(context.Background(), "/transactions/1", nil, "tok", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrServerError))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, err, hookErr)
}

func TestGet_RetriesWhenConfigured(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	tr := NewRESTTransport(&Options{
		Service: "contacts",
		BaseURL: server.URL,
		RetryConfig: &types.RetryConfig{
			MaxRetries: 2,
			RetryWait:  time.Millisecond,
			MaxWait:    5 * time.Millisecond,
		},
	})

	var contacts []map[string]interface{}
	err := tr.Get(context.Background(), "/contacts/alice", nil, "tok", &contacts)

	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	assert.Empty(t, contacts)
}

func TestGet_TimeoutIsClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	tr := NewRESTTransport(&Options{Service: "balancereader", BaseURL: server.URL, Timeout: 20 * time.Millisecond})

	err := tr.Get(context.Background(), "/balances/1", nil, "tok", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrTimeout))
}

func TestGet_UnreachableHost(t *testing.T) {
	tr := NewRESTTransport(&Options{Service: "contacts", BaseURL: "http://127.0.0.1:1"})

	err := tr.Get(context.Background(), "/contacts/alice", nil, "", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "contacts request failed")
}

func TestNewRESTTransport_TimeoutCopiesCallerClient(t *testing.T) {
	custom := &http.Client{Timeout: 30 * time.Second}
	opts := &Options{Service: "contacts", BaseURL: "http://contacts:8080", HTTPClient: custom, Timeout: time.Second}

	NewRESTTransport(opts)

	assert.Equal(t, 30*time.Second, custom.Timeout)
	assert.Equal(t, time.Second, opts.HTTPClient.Timeout)
}
