package auth

import (
	"context"
	"net/url"
	"strings"

	"github.com/eshaffer321/bank-assistant-go/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	loginEndpoint = "/login"

	// DemoToken is the placeholder credential treated as "no credential"
	DemoToken = "demo-token"
)

// Getter is the transport surface the auth service needs
type Getter interface {
	Get(ctx context.Context, path string, query url.Values, token string, result interface{}) error
}

// Claims are the token claims issued by the user service
type Claims struct {
	User    string `json:"user"`
	Account string `json:"acct"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

// Service handles authentication against the user service
type Service struct {
	transport    Getter
	demoPassword string
	logger       types.Logger
	parser       *jwt.Parser
}

// NewService creates a new auth service
func NewService(transport Getter, demoPassword string, logger types.Logger) *Service {
	return &Service{
		transport:    transport,
		demoPassword: demoPassword,
		logger:       logger,
		parser:       jwt.NewParser(),
	}
}

// Login performs the demo login for username and returns a session
func (s *Service) Login(ctx context.Context, username string) (*types.Session, error) {
	if s.logger != nil {
		s.logger.Debug("Login request", "username", username)
	}

	query := url.Values{
		"username": {username},
		"password": {s.demoPassword},
	}

	var loginResp loginResponse
	if err := s.transport.Get(ctx, loginEndpoint, query, "", &loginResp); err != nil {
		return nil, errors.Wrap(err, "login request failed")
	}

	if loginResp.Token == "" {
		return nil, errors.Wrap(types.ErrLoginFailed, "no token in login response")
	}

	if s.logger != nil {
		s.logger.Info("Login successful", "username", username)
	}

	return s.Session(loginResp.Token, username), nil
}

// Session builds a session from an existing bearer token
func (s *Service) Session(token, username string) *types.Session {
	return &types.Session{
		Token:     token,
		Username:  username,
		AccountID: s.AccountID(token, username),
	}
}

// AccountID reads the account number from the token's acct claim.
// The signature is not checked; the upstream services verify it.
func (s *Service) AccountID(token, fallback string) string {
	claims := &Claims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to parse token claims", "error", err)
		}
		return fallback
	}

	if claims.Account == "" {
		return fallback
	}
	return claims.Account
}

// IsAbsent reports whether token should be replaced by a demo login
func IsAbsent(token string) bool {
	token = strings.TrimSpace(token)
	return token == "" || token == DemoToken
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// loginResponse represents the login API response
type loginResponse struct {
	Token string `json:"token"`
}
