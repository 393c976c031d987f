package bank

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
)

// contactService implements the ContactService interface
type contactService struct {
	client *Client
}

// List retrieves contacts
func (s *contactService) List(ctx context.Context, session *Session) ([]*Contact, error) {
	var contacts []*Contact
	path := fmt.Sprintf("/contacts/%s", url.PathEscape(session.Username))

	if err := s.client.get(ctx, s.client.contactsTransport, path, nil, session.Token, &contacts); err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contacts, nil
}
