package arrangement

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
)

// Currencies lists every currency the random-currency batch may draw from.
var Currencies = []Currency{CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyCAD}

type Kind string

const (
	KindCurrentAccount Kind = "current-account"
	KindSavingsAccount Kind = "savings-account"
	KindPocketParent   Kind = "pocket-parent"
	KindPocketChild    Kind = "pocket-child"
)

// PostRequest is the body of POST /arrangements. ParentExternalID is only set
// for child pocket arrangements, which nest under a parent arrangement.
type PostRequest struct {
	ExternalID            string   `json:"externalId"`
	ExternalLegalEntityID string   `json:"externalLegalEntityId"`
	ProductID             string   `json:"productId"`
	Name                  string   `json:"name"`
	Currency              Currency `json:"currency"`
	AccountNumber         string   `json:"accountNumber"`
	Kind                  Kind     `json:"kind"`
	ParentExternalID      string   `json:"parentExternalId,omitempty"`
}

func (r *PostRequest) Validate() error {
	if r.ExternalID == "" {
		return errors.New("externalId is required")
	}
	if r.ExternalLegalEntityID == "" {
		return errors.New("externalLegalEntityId is required")
	}
	if r.Currency == "" {
		return errors.New("currency is required")
	}
	return nil
}

type PostResponse struct {
	ID string `json:"id"`
}

// ID pairs the internal ID returned by creation with the external ID supplied
// at creation, so later steps can address the arrangement by either form.
type ID struct {
	Internal string
	External string
}

type Product struct {
	ID              string `json:"id"`
	ProductKindName string `json:"productKindName"`
	ProductTypeName string `json:"productTypeName"`
}

type BalanceHistoryItem struct {
	ExternalArrangementID string          `json:"arrangementId"`
	Balance               decimal.Decimal `json:"balance"`
	UpdatedDate           time.Time       `json:"updatedDate"`
}

// Subscription is the body of POST /arrangements/{externalArrangementId}/subscriptions.
type Subscription struct {
	Identifier string `json:"identifier"`
}
