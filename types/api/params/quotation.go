package params

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemParams contains the raw fields for a single document line item
type LineItemParams struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// QuotationCreateParams contains parameters for creating a quotation
type QuotationCreateParams struct {
	OrganizationID  uuid.UUID
	ClientID        *uuid.UUID
	ClientName      string
	Items           []LineItemParams
	DiscountPercent decimal.Decimal
	VATPercent      decimal.Decimal
	ValidUntil      *time.Time
}

// QuotationUpdateParams contains parameters for updating a draft or sent
// quotation. Items are replaced as a set.
type QuotationUpdateParams struct {
	OrganizationID  uuid.UUID
	QuotationID     uuid.UUID
	ClientID        *uuid.UUID
	ClientName      string
	Items           []LineItemParams
	DiscountPercent decimal.Decimal
	VATPercent      decimal.Decimal
	ValidUntil      *time.Time
}
