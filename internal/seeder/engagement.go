package seeder

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/bankseed/internal/fixture"
	"github.com/frahmantamala/bankseed/internal/platform"
)

// EngagementConfigurator ingests the per-user extras: transactions, address
// book contacts, payment orders and conversations.
type EngagementConfigurator struct {
	client *platform.Client
	logger *slog.Logger
}

func NewEngagementConfigurator(client *platform.Client, logger *slog.Logger) *EngagementConfigurator {
	return &EngagementConfigurator{
		client: client,
		logger: logger,
	}
}

// IngestTransactionsByArrangement posts the generated transaction batch for
// one arrangement.
func (e *EngagementConfigurator) IngestTransactionsByArrangement(ctx context.Context, session platform.Session, externalArrangementID string) error {
	for _, tx := range fixture.TransactionsForArrangement(externalArrangementID) {
		if err := e.client.IngestTransaction(ctx, session, tx); err != nil {
			return err
		}
	}

	e.logger.Info("transactions ingested", "external_arrangement_id", externalArrangementID)
	return nil
}

// IngestContacts populates the address book of the session's user.
func (e *EngagementConfigurator) IngestContacts(ctx context.Context, session platform.Session) error {
	for _, contact := range fixture.Contacts() {
		if err := e.client.IngestContact(ctx, session, contact); err != nil {
			return err
		}
		e.logger.Info("contact ingested", "name", contact.Name)
	}
	return nil
}

// IngestPaymentOrders creates the payment orders originating from a user.
func (e *EngagementConfigurator) IngestPaymentOrders(ctx context.Context, session platform.Session, externalUserID string) error {
	for _, order := range fixture.PaymentOrders(externalUserID) {
		if err := e.client.IngestPaymentOrder(ctx, session, order); err != nil {
			return err
		}
		e.logger.Info("payment order ingested",
			"external_user_id", externalUserID,
			"payment_type", order.PaymentType)
	}
	return nil
}

// IngestConversations starts the default conversations addressed to a user.
func (e *EngagementConfigurator) IngestConversations(ctx context.Context, session platform.Session, externalUserID string) error {
	for _, conversation := range fixture.Conversations(externalUserID) {
		if err := e.client.IngestConversation(ctx, session, conversation); err != nil {
			return err
		}
		e.logger.Info("conversation ingested",
			"external_user_id", externalUserID,
			"subject", conversation.Subject)
	}
	return nil
}
