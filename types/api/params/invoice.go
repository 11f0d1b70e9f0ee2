package params

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceCreateParams contains parameters for creating a draft invoice
type InvoiceCreateParams struct {
	OrganizationID  uuid.UUID
	ClientID        *uuid.UUID
	ClientName      string
	ClientAddress   string
	ClientTaxNumber string
	Items           []LineItemParams
	DiscountPercent decimal.Decimal
	VATPercent      decimal.Decimal
	InvoiceType     string
	IssueDate       *time.Time
	DueDate         time.Time
}

// InvoiceUpdateParams contains parameters for editing a draft invoice.
// Items are replaced as a set; issued invoices reject all of these.
type InvoiceUpdateParams struct {
	OrganizationID  uuid.UUID
	InvoiceID       uuid.UUID
	ClientID        *uuid.UUID
	ClientName      string
	ClientAddress   string
	ClientTaxNumber string
	Items           []LineItemParams
	DiscountPercent decimal.Decimal
	VATPercent      decimal.Decimal
	IssueDate       *time.Time
	DueDate         time.Time
}

// CreditNoteCreateParams contains parameters for issuing a credit note
// against a previously issued invoice
type CreditNoteCreateParams struct {
	OrganizationID    uuid.UUID
	OriginalInvoiceID uuid.UUID
	Items             []LineItemParams
	Reason            string
}
