package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mizanhq/mizan-api/constants"
	"github.com/mizanhq/mizan-api/logger"
	"github.com/mizanhq/mizan-api/store"
	"github.com/mizanhq/mizan-api/types/api/params"
	"github.com/mizanhq/mizan-api/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreditNoteService issues credit notes: restricted invoice variants that
// offset a previously issued invoice. A credit note always carries a
// back-reference to its original and can never exceed the original's
// total.
type CreditNoteService struct {
	store      store.Store
	logger     *zap.Logger
	calculator *TotalsCalculator
	invoices   *InvoiceService
	now        clock
}

// NewCreditNoteService creates a new credit note service
func NewCreditNoteService(st store.Store, invoices *InvoiceService) *CreditNoteService {
	return &CreditNoteService{
		store:      st,
		logger:     logger.Log,
		calculator: NewTotalsCalculator(),
		invoices:   invoices,
		now:        time.Now,
	}
}

// CreateCreditNote issues a credit note against an issued invoice. Item
// quantities and prices are given as positive magnitudes; the note
// inherits the original's discount and VAT percents and client fields and
// is issued immediately with the seller snapshot copied from the
// original. Draft and cancelled invoices cannot be credited. Every
// active credit note is an offset against its original, so the new
// note's total is capped at the original's total minus everything
// already credited.
func (s *CreditNoteService) CreateCreditNote(ctx context.Context, p params.CreditNoteCreateParams) (*business.Invoice, error) {
	original, err := s.invoices.load(ctx, p.OrganizationID, p.OriginalInvoiceID)
	if err != nil {
		return nil, err
	}

	switch original.Status {
	case business.InvoiceStatusDraft, business.InvoiceStatusCancelled:
		return nil, business.NewInvalidTransition(string(original.Status), "credit_note")
	}
	if original.InvoiceType == business.InvoiceTypeCreditNote {
		return nil, business.NewValidationError("original_invoice_id", "cannot credit a credit note")
	}

	items, err := toLineItems(p.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, business.NewValidationError("items", "must not be empty")
	}

	totals, err := s.calculator.Compute(items, original.DiscountPercent, original.VATPercent)
	if err != nil {
		return nil, err
	}

	credited, err := s.creditedAgainst(ctx, p.OrganizationID, original.ID)
	if err != nil {
		return nil, err
	}
	if totals.TotalAmount.GreaterThan(original.Totals.TotalAmount.Sub(credited)) {
		return nil, business.NewValidationError("items", "credited total exceeds the remaining balance of the original invoice")
	}

	now := s.now()
	seq, err := s.store.NextInvoiceNumber(ctx, p.OrganizationID, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to get next credit note number: %w", err)
	}

	relatedID := original.ID
	note := business.Invoice{
		ID:               newID(),
		OrganizationID:   p.OrganizationID,
		Number:           formatDocumentNumber(constants.CreditNoteNumberPrefix, now.Year(), seq),
		ClientID:         original.ClientID,
		ClientName:       original.ClientName,
		ClientAddress:    original.ClientAddress,
		ClientTaxNumber:  original.ClientTaxNumber,
		Items:            items,
		DiscountPercent:  original.DiscountPercent,
		VATPercent:       original.VATPercent,
		InvoiceType:      business.InvoiceTypeCreditNote,
		IssueDate:        now,
		Status:           business.InvoiceStatusIssued,
		SellerName:       original.SellerName,
		SellerTaxNumber:  original.SellerTaxNumber,
		SellerAddress:    original.SellerAddress,
		RelatedInvoiceID: &relatedID,
		CreditReason:     p.Reason,
		Totals:           totals,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.CreateInvoice(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create credit note: %w", err)
	}

	s.logger.Info("Credit note issued",
		zap.String("credit_note_id", note.ID.String()),
		zap.String("number", note.Number),
		zap.String("original_invoice_id", original.ID.String()))

	return &note, nil
}

// creditedAgainst sums the totals of the active credit notes already
// issued against an invoice. Totals are recomputed from each note's raw
// fields, never trusted from storage.
func (s *CreditNoteService) creditedAgainst(ctx context.Context, orgID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	invoices, err := s.store.ListInvoices(ctx, orgID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list invoices: %w", err)
	}

	credited := decimal.Zero
	for _, inv := range invoices {
		if inv.InvoiceType != business.InvoiceTypeCreditNote {
			continue
		}
		if inv.RelatedInvoiceID == nil || *inv.RelatedInvoiceID != invoiceID {
			continue
		}
		if inv.Status == business.InvoiceStatusCancelled {
			continue
		}
		totals, err := s.calculator.Compute(inv.Items, inv.DiscountPercent, inv.VATPercent)
		if err != nil {
			return decimal.Zero, err
		}
		credited = credited.Add(totals.TotalAmount)
	}
	return credited, nil
}

// Get returns a credit note by id.
func (s *CreditNoteService) Get(ctx context.Context, orgID, id uuid.UUID) (*business.Invoice, error) {
	invoice, err := s.store.GetInvoice(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get credit note: %w", err)
	}
	if invoice.InvoiceType != business.InvoiceTypeCreditNote {
		return nil, store.ErrNotFound
	}
	return &invoice, nil
}
