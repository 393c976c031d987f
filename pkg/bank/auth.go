package bank

import (
	"context"

	"github.com/eshaffer321/bank-assistant-go/internal/auth"
)

// authService implements the AuthService interface
type authService struct {
	client  *Client
	service *auth.Service
}

// Login performs the demo login
func (a *authService) Login(ctx context.Context, username string) (*Session, error) {
	return a.service.Login(ctx, username)
}

// Session wraps a caller-supplied token
func (a *authService) Session(token, username string) *Session {
	return a.service.Session(token, username)
}
