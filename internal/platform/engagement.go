package platform

import (
	"context"
	"net/http"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/engagement"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/transaction"
)

// IngestTransaction posts one synthetic transaction for an arrangement.
func (c *Client) IngestTransaction(ctx context.Context, session Session, body transaction.PostRequest) error {
	return c.postExpect(ctx, session, c.config.EngagementURL+"/transactions", body, http.StatusCreated, nil)
}

// IngestContact creates one address-book contact for the session's user.
func (c *Client) IngestContact(ctx context.Context, session Session, body engagement.Contact) error {
	return c.postExpect(ctx, session, c.config.EngagementURL+"/contacts", body, http.StatusCreated, nil)
}

// IngestPaymentOrder creates one payment order on behalf of a user.
func (c *Client) IngestPaymentOrder(ctx context.Context, session Session, body engagement.PaymentOrder) error {
	return c.postExpect(ctx, session, c.config.EngagementURL+"/payment-orders", body, http.StatusCreated, nil)
}

// IngestConversation starts one conversation addressed to a user.
func (c *Client) IngestConversation(ctx context.Context, session Session, body engagement.Conversation) error {
	return c.postExpect(ctx, session, c.config.EngagementURL+"/conversations", body, http.StatusCreated, nil)
}
