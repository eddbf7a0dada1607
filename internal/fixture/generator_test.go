package fixture_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/arrangement"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/transaction"
	"github.com/frahmantamala/bankseed/internal/fixture"
)

var _ = Describe("Products", func() {
	It("builds a catalog with distinct product IDs", func() {
		products := fixture.Products()

		Expect(products).To(HaveLen(5))
		ids := map[string]bool{}
		for _, p := range products {
			Expect(p.ID).NotTo(BeEmpty())
			ids[p.ID] = true
		}
		Expect(ids).To(HaveLen(len(products)))
	})
})

var _ = Describe("Arrangements", func() {
	It("builds the requested count with distinct external IDs", func() {
		arrangements := fixture.Arrangements("le-user-001", arrangement.CurrencyEUR, 3)

		Expect(arrangements).To(HaveLen(3))
		ids := map[string]bool{}
		for _, a := range arrangements {
			Expect(a.Validate()).To(Succeed())
			Expect(a.ExternalLegalEntityID).To(Equal("le-user-001"))
			Expect(a.Currency).To(Equal(arrangement.CurrencyEUR))
			ids[a.ExternalID] = true
		}
		Expect(ids).To(HaveLen(3))
	})

	It("draws a supported currency per arrangement when none is given", func() {
		for _, a := range fixture.Arrangements("le-user-001", "", 20) {
			Expect(arrangement.Currencies).To(ContainElement(a.Currency))
		}
	})
})

var _ = Describe("Pocket arrangements", func() {
	It("builds a parent nesting point for 1-to-many mode", func() {
		a := fixture.ParentPocketArrangement("le-user-001")

		Expect(a.Validate()).To(Succeed())
		Expect(a.Kind).To(Equal(arrangement.KindPocketParent))
		Expect(a.ParentExternalID).To(BeEmpty())
	})

	It("builds a standalone arrangement for 1-to-1 mode", func() {
		a := fixture.ChildPocketArrangement("le-user-001")

		Expect(a.Validate()).To(Succeed())
		Expect(a.Kind).To(Equal(arrangement.KindPocketChild))
	})
})

var _ = Describe("BalanceHistory", func() {
	It("builds a year of monthly snapshots, newest first", func() {
		items := fixture.BalanceHistory("ext-arr-1")

		Expect(items).To(HaveLen(12))
		for i, item := range items {
			Expect(item.ExternalArrangementID).To(Equal("ext-arr-1"))
			Expect(item.Balance.GreaterThanOrEqual(decimal.NewFromInt(100))).To(BeTrue())
			if i > 0 {
				Expect(item.UpdatedDate.Before(items[i-1].UpdatedDate)).To(BeTrue())
			}
		}
	})
})

var _ = Describe("TransactionsForArrangement", func() {
	It("alternates credits and debits across the batch", func() {
		txs := fixture.TransactionsForArrangement("ext-arr-1")

		Expect(txs).To(HaveLen(10))
		credits := 0
		for _, tx := range txs {
			Expect(tx.ExternalArrangementID).To(Equal("ext-arr-1"))
			if tx.CreditDebitIndicator == transaction.IndicatorCredit {
				credits++
			}
		}
		Expect(credits).To(Equal(5))
	})
})

var _ = Describe("Pockets", func() {
	It("builds the default pocket set with future deadlines", func() {
		pockets := fixture.Pockets()

		Expect(pockets).To(HaveLen(3))
		for _, p := range pockets {
			Expect(p.Goal.IsPositive()).To(BeTrue())
		}
	})
})

var _ = Describe("PaymentOrders", func() {
	It("originates every order from the given user", func() {
		orders := fixture.PaymentOrders("user-001")

		Expect(orders).To(HaveLen(2))
		for _, o := range orders {
			Expect(o.ExternalUserID).To(Equal("user-001"))
			Expect(o.InstructedAmount.Amount.IsPositive()).To(BeTrue())
		}
	})
})
