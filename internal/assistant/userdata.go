package assistant

import (
	"context"
	"fmt"

	"github.com/eshaffer321/bank-assistant-go/internal/auth"
	"github.com/eshaffer321/bank-assistant-go/internal/models"
	"github.com/eshaffer321/bank-assistant-go/pkg/bank"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// UserData gathers balance, transactions and contacts for username. An empty token or
// the demo token triggers a demo login. It never fails: each field that cannot be
// fetched is replaced with demo data.
func (a *Assistant) UserData(ctx context.Context, username, token string) *models.UserData {
	session, err := a.session(ctx, username, token)
	if err != nil {
		a.logger.Warn("No valid auth token available, using fallback data",
			zap.String("username", username),
			zap.Error(err),
		)
		a.breadcrumb(ctx, "userservice", err)
		return FallbackUserData(username)
	}

	data := &models.UserData{Username: username}

	balance, err := a.bank.Balances.Get(ctx, session)
	if err != nil {
		a.degrade(ctx, data, FieldBalance, err)
		data.Balance = fallbackBalance()
	} else {
		data.Balance = models.Balance{Amount: balance.Amount(), Currency: balance.Currency}
	}

	history, historyErr := a.bank.Transactions.List(ctx, session)

	contacts, err := a.bank.Contacts.List(ctx, session)
	var labels map[string]string
	if err != nil {
		a.degrade(ctx, data, FieldContacts, err)
		data.Contacts = fallbackContacts()
	} else {
		data.Contacts, labels = convertContacts(contacts)
	}

	// Descriptions need the fetched contact labels
	if historyErr != nil {
		a.degrade(ctx, data, FieldTransactions, historyErr)
		data.Transactions = fallbackTransactions()
	} else {
		data.Transactions = normalizeTransactions(history, session.AccountID, labels)
	}

	a.logger.Debug("Assembled user data",
		zap.String("username", username),
		zap.Int("transactions", len(data.Transactions)),
		zap.Int("contacts", len(data.Contacts)),
		zap.Strings("fallbacks", data.Fallbacks),
	)

	return data
}

func (a *Assistant) session(ctx context.Context, username, token string) (*bank.Session, error) {
	if auth.IsAbsent(token) {
		a.logger.Info("Getting auth token", zap.String("username", username))
		return a.bank.Auth.Login(ctx, username)
	}
	return a.bank.Auth.Session(token, username), nil
}

func (a *Assistant) degrade(ctx context.Context, data *models.UserData, field string, err error) {
	a.logger.Warn("Upstream fetch failed, using fallback data",
		zap.String("field", field),
		zap.String("service", bank.ServiceOf(err)),
		zap.Error(err),
	)
	a.breadcrumb(ctx, field, err)
	data.Fallbacks = append(data.Fallbacks, field)
}

func (a *Assistant) breadcrumb(ctx context.Context, field string, err error) {
	hub(ctx).AddBreadcrumb(&sentry.Breadcrumb{
		Category: "upstream",
		Message:  fmt.Sprintf("%s fell back to demo data: %v", field, err),
		Level:    sentry.LevelWarning,
	}, nil)
}

func convertContacts(contacts []*bank.Contact) ([]models.Contact, map[string]string) {
	out := make([]models.Contact, 0, len(contacts))
	labels := make(map[string]string, len(contacts))
	for _, c := range contacts {
		if c == nil {
			continue
		}
		out = append(out, models.Contact{
			Label:      c.Label,
			AccountNum: c.AccountNum,
			IsExternal: c.IsExternal,
		})
		if c.AccountNum != "" {
			labels[c.AccountNum] = c.Label
		}
	}
	return out, labels
}

// normalizeTransactions keeps the first MaxTransactions entries and describes each
// from the account holder's point of view
func normalizeTransactions(history []*bank.Transaction, accountID string, labels map[string]string) []models.Transaction {
	if len(history) > MaxTransactions {
		history = history[:MaxTransactions]
	}

	out := make([]models.Transaction, 0, len(history))
	for _, t := range history {
		if t == nil {
			continue
		}

		incoming := t.IsIncomingFor(accountID)
		counterparty := t.Counterparty(accountID)

		amount := t.Dollars()
		direction := models.Incoming
		preposition := "from"
		if !incoming {
			amount = amount.Neg()
			direction = models.Outgoing
			preposition = "to"
		}

		description := fmt.Sprintf("Transfer %s account %s", preposition, counterparty)
		if label, ok := labels[counterparty]; ok {
			description = fmt.Sprintf("Payment %s %s", preposition, label)
		}

		raw := t.Amount
		out = append(out, models.Transaction{
			Amount:        amount,
			Description:   description,
			Timestamp:     t.Timestamp,
			Direction:     direction,
			RawAmount:     &raw,
			FromAccount:   t.FromAccountNum,
			ToAccount:     t.ToAccountNum,
			TransactionID: t.TransactionID.String(),
		})
	}
	return out
}
