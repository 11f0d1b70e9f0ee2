package params

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCreateParams contains parameters for applying a payment to an
// invoice
type PaymentCreateParams struct {
	OrganizationID uuid.UUID
	InvoiceID      uuid.UUID
	Amount         decimal.Decimal
	PaymentDate    time.Time
	Method         string
	Reference      string
	Notes          string
}
