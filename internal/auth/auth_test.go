package auth

import (
	"context"
	"net/url"
	"testing"

	"github.com/eshaffer321/bank-assistant-go/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGetter struct {
	mock.Mock
}

func (m *MockGetter) Get(ctx context.Context, path string, query url.Values, token string, result interface{}) error {
	args := m.Called(ctx, path, query, token, result)
	if fn, ok := args.Get(0).(func(interface{})); ok && fn != nil {
		fn(result)
	}
	return args.Error(1)
}

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestService_Login(t *testing.T) {
	token := signedToken(t, Claims{User: "testuser", Account: "1011226111"})

	getter := new(MockGetter)
	getter.On("Get", mock.Anything, "/login", url.Values{
		"username": {"testuser"},
		"password": {"bankofanthos"},
	}, "", mock.Anything).Return(func(result interface{}) {
		result.(*loginResponse).Token = token
	}, nil)

	svc := NewService(getter, "bankofanthos", nil)
	session, err := svc.Login(context.Background(), "testuser")

	require.NoError(t, err)
	assert.Equal(t, token, session.Token)
	assert.Equal(t, "testuser", session.Username)
	assert.Equal(t, "1011226111", session.AccountID)
	getter.AssertExpectations(t)
}

func TestService_Login_Failure(t *testing.T) {
	getter := new(MockGetter)
	getter.On("Get", mock.Anything, "/login", mock.Anything, "", mock.Anything).
		Return(nil, &types.Error{Code: "NOT_AUTHENTICATED", StatusCode: 401, Err: types.ErrNotAuthenticated})

	svc := NewService(getter, "bankofanthos", nil)
	session, err := svc.Login(context.Background(), "testuser")

	require.Error(t, err)
	assert.Nil(t, session)
	assert.True(t, errors.Is(err, types.ErrNotAuthenticated))
}

func TestService_Login_EmptyToken(t *testing.T) {
	getter := new(MockGetter)
	getter.On("Get", mock.Anything, "/login", mock.Anything, "", mock.Anything).Return(nil, nil)

	svc := NewService(getter, "pw", nil)
	_, err := svc.Login(context.Background(), "testuser")

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrLoginFailed))
}

func TestService_AccountID(t *testing.T) {
	svc := NewService(nil, "", nil)

	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{"acct claim present", signedToken(t, Claims{Account: "7777777777"}), "7777777777"},
		{"acct claim missing", signedToken(t, Claims{User: "bob"}), "bob"},
		{"not a jwt", "demo-token", "bob"},
		{"empty", "", "bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.AccountID(tt.token, "bob"))
		})
	}
}

func TestIsAbsent(t *testing.T) {
	assert.True(t, IsAbsent(""))
	assert.True(t, IsAbsent("  "))
	assert.True(t, IsAbsent(DemoToken))
	assert.False(t, IsAbsent("eyJhbGciOi"))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc", "abc"},
		{"Token abc", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, BearerToken(tt.header))
		})
	}
}
