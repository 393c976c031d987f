package bank

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
)

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// List retrieves transaction history
func (s *transactionService) List(ctx context.Context, session *Session) ([]*Transaction, error) {
	var transactions []*Transaction
	path := fmt.Sprintf("/transactions/%s", url.PathEscape(session.AccountID))

	if err := s.client.get(ctx, s.client.historyTransport, path, nil, session.Token, &transactions); err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return transactions, nil
}
