package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mizanhq/mizan-api/logger"
	"github.com/mizanhq/mizan-api/store"
	"github.com/mizanhq/mizan-api/types/api/params"
	"github.com/mizanhq/mizan-api/types/business"
	"github.com/shopspring/decimal"
)

func init() {
	logger.InitLogger("test")
}

// frozenTime is the reference instant used by the lifecycle tests.
var frozenTime = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func frozenClock(at time.Time) clock {
	return func() time.Time { return at }
}

// testEnv bundles the full engine wired against the in-memory store with
// every service clock frozen at the same instant.
type testEnv struct {
	store       *store.MemoryStore
	quotations  *QuotationService
	invoices    *InvoiceService
	payments    *PaymentService
	creditNotes *CreditNoteService
	org         business.Organization
}

func newTestEnv() *testEnv {
	st := store.NewMemoryStore()

	invoices := NewInvoiceService(st, NewZatcaService())
	env := &testEnv{
		store:       st,
		quotations:  NewQuotationService(st),
		invoices:    invoices,
		payments:    NewPaymentService(st, invoices),
		creditNotes: NewCreditNoteService(st, invoices),
		org: business.Organization{
			ID:        uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			Name:      "Acme Trading Co",
			TaxNumber: "310122393500003",
			Address:   "123 King Fahd Rd, Riyadh",
		},
	}

	env.quotations.now = frozenClock(frozenTime)
	env.invoices.now = frozenClock(frozenTime)
	env.payments.now = frozenClock(frozenTime)
	env.creditNotes.now = frozenClock(frozenTime)

	if err := st.UpsertOrganization(context.Background(), env.org); err != nil {
		panic(err)
	}

	return env
}

// advance moves every frozen service clock to the given instant.
func (e *testEnv) advance(to time.Time) {
	e.quotations.now = frozenClock(to)
	e.invoices.now = frozenClock(to)
	e.payments.now = frozenClock(to)
	e.creditNotes.now = frozenClock(to)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testItems() []params.LineItemParams {
	return []params.LineItemParams{
		{Description: "Consulting hours", Quantity: dec("10"), UnitPrice: dec("100")},
	}
}
