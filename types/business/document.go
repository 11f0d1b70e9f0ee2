package business

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus is the lifecycle state of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft     QuotationStatus = "draft"
	QuotationStatusSent      QuotationStatus = "sent"
	QuotationStatusViewed    QuotationStatus = "viewed"
	QuotationStatusAccepted  QuotationStatus = "accepted"
	QuotationStatusRejected  QuotationStatus = "rejected"
	QuotationStatusExpired   QuotationStatus = "expired"
	QuotationStatusConverted QuotationStatus = "converted"
)

// InvoiceStatus is the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusIssued        InvoiceStatus = "issued"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusViewed        InvoiceStatus = "viewed"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

// InvoiceType distinguishes the legal variant of an invoice
type InvoiceType string

const (
	InvoiceTypeStandard   InvoiceType = "standard"
	InvoiceTypeTax        InvoiceType = "tax"
	InvoiceTypeSimplified InvoiceType = "simplified"
	InvoiceTypeCreditNote InvoiceType = "credit_note"
	InvoiceTypeDebitNote  InvoiceType = "debit_note"
)

// LineItem is a single billable line on a quotation or invoice.
// Items are owned by their parent document and replaced as a set on
// every items update.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal returns quantity times unit price at full precision.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// TotalsBreakdown is the derived monetary breakdown of a document. It is
// always recomputed from (items, discount percent, VAT percent) and never
// stored as independently editable fields.
type TotalsBreakdown struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// Organization is the owning tenant and seller of all documents.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TaxNumber string    `json:"tax_number"` // 15-digit ZATCA VAT registration, empty if unregistered
	Address   string    `json:"address"`
}

// Quotation is a sellable document offered to a client before invoicing.
type Quotation struct {
	ID                 uuid.UUID       `json:"id"`
	OrganizationID     uuid.UUID       `json:"organization_id"`
	Number             string          `json:"number"`
	ClientID           *uuid.UUID      `json:"client_id,omitempty"`
	ClientName         string          `json:"client_name"`
	Items              []LineItem      `json:"items"`
	DiscountPercent    decimal.Decimal `json:"discount_percent"`
	VATPercent         decimal.Decimal `json:"vat_percent"`
	ValidUntil         time.Time       `json:"valid_until"`
	Status             QuotationStatus `json:"status"`
	ConvertedInvoiceID *uuid.UUID      `json:"converted_invoice_id,omitempty"`
	Totals             TotalsBreakdown `json:"totals"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Invoice is a billable document. Seller fields are frozen at issuance so
// later organization profile edits never alter issued invoices.
type Invoice struct {
	ID              uuid.UUID       `json:"id"`
	OrganizationID  uuid.UUID       `json:"organization_id"`
	Number          string          `json:"number"`
	QuotationID     *uuid.UUID      `json:"quotation_id,omitempty"`
	ClientID        *uuid.UUID      `json:"client_id,omitempty"`
	ClientName      string          `json:"client_name"`
	ClientAddress   string          `json:"client_address"`
	ClientTaxNumber string          `json:"client_tax_number"`
	Items           []LineItem      `json:"items"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	VATPercent      decimal.Decimal `json:"vat_percent"`
	InvoiceType     InvoiceType     `json:"invoice_type"`
	IssueDate       time.Time       `json:"issue_date"`
	DueDate         time.Time       `json:"due_date"`
	Status          InvoiceStatus   `json:"status"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`

	// Frozen seller snapshot, captured at issuance
	SellerName      string `json:"seller_name"`
	SellerTaxNumber string `json:"seller_tax_number"`
	SellerAddress   string `json:"seller_address"`

	// Tax invoice fields, present only when InvoiceType is tax
	QRCode    string `json:"qr_code,omitempty"`
	ZatcaUUID string `json:"zatca_uuid,omitempty"`

	// Credit note back-reference to the invoice it offsets, and the
	// stated reason for the credit
	RelatedInvoiceID *uuid.UUID `json:"related_invoice_id,omitempty"`
	CreditReason     string     `json:"credit_reason,omitempty"`

	Totals    TotalsBreakdown `json:"totals"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Payment is money applied against an invoice. Immutable once created
// except for deletion, which rederives the parent invoice's paid amount
// and status.
type Payment struct {
	ID             uuid.UUID       `json:"id"`
	OrganizationID uuid.UUID       `json:"organization_id"`
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    time.Time       `json:"payment_date"`
	Method         string          `json:"method,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ZatcaQRFields are the five fields carried by a ZATCA tax receipt QR
// payload, in fixed TLV tag order 1..5.
type ZatcaQRFields struct {
	SellerName   string          `json:"seller_name"`
	VATNumber    string          `json:"vat_number"`
	Timestamp    time.Time       `json:"timestamp"`
	TotalWithVAT decimal.Decimal `json:"total_with_vat"`
	VATAmount    decimal.Decimal `json:"vat_amount"`
}
