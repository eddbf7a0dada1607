package platform

import (
	"context"
	"net/http"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/arrangement"
)

// Error keys the arrangement services return on duplicate creations.
const (
	ErrKeyArrangementExists = "arrangements.api.alreadyExists.arrangement"
	ErrKeyProductExists     = "account.api.product.alreadyExists"
)

// IngestArrangement posts one arrangement and returns the raw response so the
// caller can apply the created/skipped/failed decision.
func (c *Client) IngestArrangement(ctx context.Context, session Session, body arrangement.PostRequest) (*http.Response, error) {
	return c.post(ctx, session, c.config.ArrangementsURL+"/arrangements", body)
}

// IngestProduct posts one product definition; duplicates surface as a 400
// with ErrKeyProductExists.
func (c *Client) IngestProduct(ctx context.Context, session Session, body arrangement.Product) (*http.Response, error) {
	return c.post(ctx, session, c.config.ArrangementsURL+"/products", body)
}

// IngestBalance posts one balance-history item, expecting a plain 201.
func (c *Client) IngestBalance(ctx context.Context, session Session, body arrangement.BalanceHistoryItem) error {
	return c.postExpect(ctx, session, c.config.ArrangementsURL+"/balance-history", body, http.StatusCreated, nil)
}

// PostSubscription subscribes an arrangement, addressed by external ID.
func (c *Client) PostSubscription(ctx context.Context, session Session, externalArrangementID string, body arrangement.Subscription) error {
	url := c.config.ArrangementsURL + "/arrangements/" + externalArrangementID + "/subscriptions"
	return c.postExpect(ctx, session, url, body, http.StatusCreated, nil)
}
