package bank

import (
	"context"
	"fmt"
	"net/url"

	internalTypes "github.com/eshaffer321/bank-assistant-go/internal/types"
	"github.com/pkg/errors"
)

// balanceService implements the BalanceService interface
type balanceService struct {
	client *Client
}

// Get retrieves the balance in minor units and tags it with the service currency
func (s *balanceService) Get(ctx context.Context, session *Session) (*Balance, error) {
	var cents int64
	path := fmt.Sprintf("/balances/%s", url.PathEscape(session.AccountID))

	if err := s.client.get(ctx, s.client.balanceTransport, path, nil, session.Token, &cents); err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return &Balance{Cents: cents, Currency: internalTypes.DefaultCurrency}, nil
}
