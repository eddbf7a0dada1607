package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreditDebitIndicator string

const (
	IndicatorCredit CreditDebitIndicator = "CRDT"
	IndicatorDebit  CreditDebitIndicator = "DBIT"
)

type PostRequest struct {
	ExternalID            string               `json:"externalId"`
	ExternalArrangementID string               `json:"arrangementId"`
	Reference             string               `json:"reference"`
	Description           string               `json:"description"`
	Amount                decimal.Decimal      `json:"amount"`
	Currency              string               `json:"currency"`
	CreditDebitIndicator  CreditDebitIndicator `json:"creditDebitIndicator"`
	BookingDate           time.Time            `json:"bookingDate"`
}
