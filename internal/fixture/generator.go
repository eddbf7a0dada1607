// Package fixture generates the synthetic request bodies a seeding run posts
// to the platform. All randomness is cosmetic; identity comes from the
// generated external IDs.
package fixture

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/arrangement"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/engagement"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/pocket"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/transaction"
)

const (
	balanceHistoryItems        = 12
	transactionsPerArrangement = 10
)

// Products returns the static product catalog every environment needs before
// arrangements can reference a productId.
func Products() []arrangement.Product {
	return []arrangement.Product{
		{ID: "1", ProductKindName: "Current Account", ProductTypeName: "current-account"},
		{ID: "2", ProductKindName: "Savings Account", ProductTypeName: "savings-account"},
		{ID: "3", ProductKindName: "Credit Card", ProductTypeName: "credit-card"},
		{ID: "4", ProductKindName: "Loan", ProductTypeName: "loan"},
		{ID: "5", ProductKindName: "Term Deposit", ProductTypeName: "term-deposit"},
	}
}

// RandomCurrency draws one of the supported currencies.
func RandomCurrency() arrangement.Currency {
	return arrangement.Currencies[rand.Intn(len(arrangement.Currencies))]
}

// Arrangements builds count arrangement bodies for a legal entity. When
// currency is empty every arrangement gets its own randomly drawn currency.
func Arrangements(externalLegalEntityID string, currency arrangement.Currency, count int) []arrangement.PostRequest {
	arrangements := make([]arrangement.PostRequest, 0, count)

	for i := 0; i < count; i++ {
		c := currency
		if c == "" {
			c = RandomCurrency()
		}

		externalID := uuid.NewString()
		arrangements = append(arrangements, arrangement.PostRequest{
			ExternalID:            externalID,
			ExternalLegalEntityID: externalLegalEntityID,
			ProductID:             fmt.Sprintf("%d", 1+rand.Intn(2)),
			Name:                  fmt.Sprintf("Account %s", externalID[:8]),
			Currency:              c,
			AccountNumber:         accountNumber(),
			Kind:                  arrangement.KindCurrentAccount,
		})
	}

	return arrangements
}

// ParentPocketArrangement builds the parent arrangement all pockets of a
// legal entity nest under (1-to-many mode).
func ParentPocketArrangement(externalLegalEntityID string) arrangement.PostRequest {
	externalID := uuid.NewString()
	return arrangement.PostRequest{
		ExternalID:            externalID,
		ExternalLegalEntityID: externalLegalEntityID,
		ProductID:             "2",
		Name:                  "Pocket parent " + externalID[:8],
		Currency:              arrangement.CurrencyEUR,
		AccountNumber:         accountNumber(),
		Kind:                  arrangement.KindPocketParent,
	}
}

// ChildPocketArrangement builds a standalone pocket arrangement (1-to-1 mode).
func ChildPocketArrangement(externalLegalEntityID string) arrangement.PostRequest {
	externalID := uuid.NewString()
	return arrangement.PostRequest{
		ExternalID:            externalID,
		ExternalLegalEntityID: externalLegalEntityID,
		ProductID:             "2",
		Name:                  "Pocket " + externalID[:8],
		Currency:              arrangement.CurrencyEUR,
		AccountNumber:         accountNumber(),
		Kind:                  arrangement.KindPocketChild,
	}
}

// BalanceHistory builds a year of monthly balance snapshots for an
// arrangement, newest first.
func BalanceHistory(externalArrangementID string) []arrangement.BalanceHistoryItem {
	items := make([]arrangement.BalanceHistoryItem, 0, balanceHistoryItems)
	now := time.Now().UTC().Truncate(24 * time.Hour)

	for i := 0; i < balanceHistoryItems; i++ {
		items = append(items, arrangement.BalanceHistoryItem{
			ExternalArrangementID: externalArrangementID,
			Balance:               randomAmount(100, 100000),
			UpdatedDate:           now.AddDate(0, -i, 0),
		})
	}

	return items
}

// TransactionsForArrangement builds a batch of synthetic transactions for one
// arrangement.
func TransactionsForArrangement(externalArrangementID string) []transaction.PostRequest {
	txs := make([]transaction.PostRequest, 0, transactionsPerArrangement)
	now := time.Now().UTC()

	for i := 0; i < transactionsPerArrangement; i++ {
		indicator := transaction.IndicatorCredit
		if i%2 == 1 {
			indicator = transaction.IndicatorDebit
		}

		txs = append(txs, transaction.PostRequest{
			ExternalID:            uuid.NewString(),
			ExternalArrangementID: externalArrangementID,
			Reference:             fmt.Sprintf("REF-%06d", rand.Intn(1000000)),
			Description:           "Seeded transaction",
			Amount:                randomAmount(1, 2500),
			Currency:              string(arrangement.CurrencyEUR),
			CreditDebitIndicator:  indicator,
			BookingDate:           now.AddDate(0, 0, -i),
		})
	}

	return txs
}

// Pockets builds the default pocket set every pocket-enabled user receives.
func Pockets() []pocket.PostRequest {
	deadline := time.Now().UTC().AddDate(1, 0, 0)
	return []pocket.PostRequest{
		{Name: "Vacation", Icon: "beach", Goal: decimal.NewFromInt(2500), Deadline: deadline},
		{Name: "New car", Icon: "car", Goal: decimal.NewFromInt(15000), Deadline: deadline},
		{Name: "Rainy day", Icon: "umbrella", Goal: decimal.NewFromInt(1000), Deadline: deadline},
	}
}

// Contacts builds the default address book for a user.
func Contacts() []engagement.Contact {
	return []engagement.Contact{
		{Name: "John Doe", Alias: "John", AccountNumber: accountNumber(), IBAN: "NL02ABNA0123456789"},
		{Name: "Jane Smith", Alias: "Jane", AccountNumber: accountNumber(), IBAN: "DE89370400440532013000"},
		{Name: "Acme Supplies", Alias: "Acme", AccountNumber: accountNumber()},
	}
}

// PaymentOrders builds a pair of payment orders originating from the user.
func PaymentOrders(externalUserID string) []engagement.PaymentOrder {
	return []engagement.PaymentOrder{
		{
			ExternalUserID:      externalUserID,
			OriginatorAccount:   accountNumber(),
			CounterpartyName:    "John Doe",
			CounterpartyAccount: accountNumber(),
			PaymentType:         "SEPA_CREDIT_TRANSFER",
			InstructedAmount:    engagement.InstructedAmount{Amount: randomAmount(1, 500), Currency: "EUR"},
		},
		{
			ExternalUserID:      externalUserID,
			OriginatorAccount:   accountNumber(),
			CounterpartyName:    "Acme Supplies",
			CounterpartyAccount: accountNumber(),
			PaymentType:         "US_DOMESTIC_WIRE",
			InstructedAmount:    engagement.InstructedAmount{Amount: randomAmount(100, 5000), Currency: "USD"},
		},
	}
}

// Conversations builds the default conversation set addressed to a user.
func Conversations(externalUserID string) []engagement.Conversation {
	return []engagement.Conversation{
		{ExternalUserID: externalUserID, Subject: "Welcome", Body: "Welcome to your new account."},
		{ExternalUserID: externalUserID, Subject: "Card delivery", Body: "Your debit card is on its way."},
	}
}

func accountNumber() string {
	return fmt.Sprintf("%010d", rand.Int63n(1e10))
}

// randomAmount returns a two-decimal amount in [min, max).
func randomAmount(min, max int64) decimal.Decimal {
	cents := min*100 + rand.Int63n((max-min)*100)
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
