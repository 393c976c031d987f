package assistant

import (
	"context"

	"github.com/eshaffer321/bank-assistant-go/pkg/bank"
	"github.com/stretchr/testify/mock"
)

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Login(ctx context.Context, username string) (*bank.Session, error) {
	args := m.Called(ctx, username)
	if s := args.Get(0); s != nil {
		return s.(*bank.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuth) Session(token, username string) *bank.Session {
	args := m.Called(token, username)
	return args.Get(0).(*bank.Session)
}

type MockBalances struct {
	mock.Mock
}

func (m *MockBalances) Get(ctx context.Context, session *bank.Session) (*bank.Balance, error) {
	args := m.Called(ctx, session)
	if b := args.Get(0); b != nil {
		return b.(*bank.Balance), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTransactions struct {
	mock.Mock
}

func (m *MockTransactions) List(ctx context.Context, session *bank.Session) ([]*bank.Transaction, error) {
	args := m.Called(ctx, session)
	if t := args.Get(0); t != nil {
		return t.([]*bank.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockContacts struct {
	mock.Mock
}

func (m *MockContacts) List(ctx context.Context, session *bank.Session) ([]*bank.Contact, error) {
	args := m.Called(ctx, session)
	if c := args.Get(0); c != nil {
		return c.([]*bank.Contact), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockModel struct {
	mock.Mock
}

func (m *MockModel) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mocks struct {
	auth         *MockAuth
	balances     *MockBalances
	transactions *MockTransactions
	contacts     *MockContacts
}

func newMockBank() (*bank.Client, *mocks) {
	m := &mocks{
		auth:         &MockAuth{},
		balances:     &MockBalances{},
		transactions: &MockTransactions{},
		contacts:     &MockContacts{},
	}
	client := &bank.Client{
		Auth:         m.auth,
		Balances:     m.balances,
		Transactions: m.transactions,
		Contacts:     m.contacts,
	}
	return client, m
}
