package business

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeriveInvoiceStatus recomputes an invoice status as a pure function of
// its payments, totals and due date. Every mutation path goes through this
// single function so status is never hand-set in more than one place.
//
// Precedence: terminal statuses hold; a fully paid invoice is paid; an
// unpaid invoice past its due date is overdue; a partially paid invoice is
// partially paid; otherwise the current delivery status stands. An invoice
// whose payments have all been reversed falls back to sent, since the
// viewed sub-state is not preserved through a full reversal.
func DeriveInvoiceStatus(paid, total decimal.Decimal, dueDate time.Time, now time.Time, current InvoiceStatus) InvoiceStatus {
	if current == InvoiceStatusCancelled || current == InvoiceStatusDraft {
		return current
	}

	if total.IsPositive() && paid.GreaterThanOrEqual(total) {
		return InvoiceStatusPaid
	}

	if !dueDate.IsZero() && now.After(dueDate) && paid.LessThan(total) {
		return InvoiceStatusOverdue
	}

	if paid.IsPositive() && paid.LessThan(total) {
		return InvoiceStatusPartiallyPaid
	}

	// paid is zero again after payment reversal
	if current == InvoiceStatusPartiallyPaid || current == InvoiceStatusPaid || current == InvoiceStatusOverdue {
		return InvoiceStatusSent
	}

	return current
}

// DeriveQuotationStatus applies validity expiry on read: a sent, viewed or
// accepted quotation past its deadline is expired. All other statuses hold.
func DeriveQuotationStatus(validUntil time.Time, now time.Time, current QuotationStatus) QuotationStatus {
	switch current {
	case QuotationStatusSent, QuotationStatusViewed, QuotationStatusAccepted:
		if !validUntil.IsZero() && now.After(validUntil) {
			return QuotationStatusExpired
		}
	}
	return current
}

// IsTerminal reports whether no further transitions are permitted from
// this quotation status.
func (s QuotationStatus) IsTerminal() bool {
	switch s {
	case QuotationStatusConverted, QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions or payments are
// permitted from this invoice status.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}
