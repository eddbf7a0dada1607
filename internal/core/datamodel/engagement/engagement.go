// Package engagement holds the request bodies for the per-user engagement
// ingestion stages: contacts, payment orders and conversations.
package engagement

import "github.com/shopspring/decimal"

type Contact struct {
	Name          string `json:"name"`
	Alias         string `json:"alias"`
	AccountNumber string `json:"accountNumber"`
	IBAN          string `json:"iban,omitempty"`
}

type InstructedAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type PaymentOrder struct {
	ExternalUserID      string           `json:"externalUserId"`
	OriginatorAccount   string           `json:"originatorAccount"`
	CounterpartyName    string           `json:"counterpartyName"`
	CounterpartyAccount string           `json:"counterpartyAccount"`
	PaymentType         string           `json:"paymentType"`
	InstructedAmount    InstructedAmount `json:"instructedAmount"`
}

type Conversation struct {
	ExternalUserID string `json:"externalUserId"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
}
