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

// InvoiceService owns the invoice lifecycle: drafting, issuance with the
// frozen seller snapshot, delivery transitions, cancellation, overdue
// derivation and the one-shot conversion to a ZATCA tax invoice.
type InvoiceService struct {
	store      store.Store
	logger     *zap.Logger
	calculator *TotalsCalculator
	zatca      *ZatcaService
	locks      *entityLocks
	now        clock
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(st store.Store, zatca *ZatcaService) *InvoiceService {
	return &InvoiceService{
		store:      st,
		logger:     logger.Log,
		calculator: NewTotalsCalculator(),
		zatca:      zatca,
		locks:      newEntityLocks(),
		now:        time.Now,
	}
}

// Create creates a new draft invoice. Draft invoices are freely editable;
// none of the issuance requirements apply yet.
func (s *InvoiceService) Create(ctx context.Context, p params.InvoiceCreateParams) (*business.Invoice, error) {
	if p.OrganizationID == uuid.Nil {
		return nil, business.NewValidationError("organization_id", "must not be empty")
	}

	invoiceType := business.InvoiceTypeStandard
	if p.InvoiceType != "" {
		invoiceType = business.InvoiceType(p.InvoiceType)
		switch invoiceType {
		case business.InvoiceTypeStandard, business.InvoiceTypeSimplified, business.InvoiceTypeDebitNote:
		case business.InvoiceTypeTax:
			return nil, business.NewValidationError("invoice_type", "tax invoices are produced by conversion")
		case business.InvoiceTypeCreditNote:
			return nil, business.NewValidationError("invoice_type", "credit notes are created against an invoice")
		default:
			return nil, business.NewValidationError("invoice_type", "unknown invoice type")
		}
	}

	items, err := toLineItems(p.Items)
	if err != nil {
		return nil, err
	}

	totals, err := s.calculator.Compute(items, p.DiscountPercent, p.VATPercent)
	if err != nil {
		return nil, err
	}

	now := s.now()
	issueDate := time.Time{}
	if p.IssueDate != nil {
		issueDate = *p.IssueDate
	}

	seq, err := s.store.NextInvoiceNumber(ctx, p.OrganizationID, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to get next invoice number: %w", err)
	}

	invoice := business.Invoice{
		ID:              newID(),
		OrganizationID:  p.OrganizationID,
		Number:          formatDocumentNumber(constants.InvoiceNumberPrefix, now.Year(), seq),
		ClientID:        p.ClientID,
		ClientName:      p.ClientName,
		ClientAddress:   p.ClientAddress,
		ClientTaxNumber: p.ClientTaxNumber,
		Items:           items,
		DiscountPercent: p.DiscountPercent,
		VATPercent:      p.VATPercent,
		InvoiceType:     invoiceType,
		IssueDate:       issueDate,
		DueDate:         p.DueDate,
		Status:          business.InvoiceStatusDraft,
		PaidAmount:      decimal.Zero,
		Totals:          totals,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.CreateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Info("Invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number),
		zap.String("organization_id", p.OrganizationID.String()))

	return &invoice, nil
}

// Get returns the invoice snapshot with totals and paid amount recomputed
// from raw fields and overdue status derived against the current time.
func (s *InvoiceService) Get(ctx context.Context, orgID, id uuid.UUID) (*business.Invoice, error) {
	return s.load(ctx, orgID, id)
}

// List returns all invoices for the organization with derived statuses.
func (s *InvoiceService) List(ctx context.Context, orgID uuid.UUID) ([]business.Invoice, error) {
	invoices, err := s.store.ListInvoices(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	result := make([]business.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		derived, err := s.derive(ctx, inv)
		if err != nil {
			return nil, err
		}
		result = append(result, *derived)
	}
	return result, nil
}

// Update edits a draft invoice. Once issued, only status, payments and
// type conversion are mutable; items, client fields and totals are not.
func (s *InvoiceService) Update(ctx context.Context, p params.InvoiceUpdateParams) (*business.Invoice, error) {
	unlock := s.locks.Lock(p.InvoiceID)
	defer unlock()

	invoice, err := s.load(ctx, p.OrganizationID, p.InvoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status != business.InvoiceStatusDraft {
		return nil, business.NewInvalidTransition(string(invoice.Status), "update")
	}

	items, err := toLineItems(p.Items)
	if err != nil {
		return nil, err
	}

	totals, err := s.calculator.Compute(items, p.DiscountPercent, p.VATPercent)
	if err != nil {
		return nil, err
	}

	invoice.ClientID = p.ClientID
	invoice.ClientName = p.ClientName
	invoice.ClientAddress = p.ClientAddress
	invoice.ClientTaxNumber = p.ClientTaxNumber
	invoice.Items = items
	invoice.DiscountPercent = p.DiscountPercent
	invoice.VATPercent = p.VATPercent
	if p.IssueDate != nil {
		invoice.IssueDate = *p.IssueDate
	}
	if !p.DueDate.IsZero() {
		invoice.DueDate = p.DueDate
	}
	invoice.Totals = totals
	invoice.UpdatedAt = s.now()

	if err := s.store.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return invoice, nil
}

// Issue finalizes a draft invoice: it validates the line items and client,
// freezes the seller snapshot at this instant and moves the invoice to
// issued. Re-issuing an already issued invoice is a no-op success.
func (s *InvoiceService) Issue(ctx context.Context, orgID, id uuid.UUID) (*business.Invoice, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	invoice, err := s.load(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if invoice.Status == business.InvoiceStatusIssued {
		return invoice, nil
	}
	if invoice.Status != business.InvoiceStatusDraft {
		return nil, business.NewInvalidTransition(string(invoice.Status), string(business.InvoiceStatusIssued))
	}

	if len(invoice.Items) == 0 {
		return nil, business.NewValidationError("items", "cannot issue an invoice without line items")
	}
	for _, item := range invoice.Items {
		if item.Description == "" {
			return nil, business.NewValidationError("description", "must not be empty")
		}
		if !item.Quantity.IsPositive() {
			return nil, business.NewValidationError("quantity", "must be positive")
		}
	}
	if invoice.ClientName == "" {
		return nil, business.NewValidationError("client_name", "must not be empty")
	}

	org, err := s.store.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	now := s.now()
	invoice.SellerName = org.Name
	invoice.SellerTaxNumber = org.TaxNumber
	invoice.SellerAddress = org.Address
	if invoice.IssueDate.IsZero() {
		invoice.IssueDate = now
	}
	invoice.Status = business.InvoiceStatusIssued
	invoice.UpdatedAt = now

	if err := s.store.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to issue invoice: %w", err)
	}

	s.logger.Info("Invoice issued",
		zap.String("invoice_id", id.String()),
		zap.String("number", invoice.Number),
		zap.Time("issue_date", invoice.IssueDate))

	return invoice, nil
}

// Send marks an issued invoice as sent to the client.
func (s *InvoiceService) Send(ctx context.Context, orgID, id uuid.UUID) (*business.Invoice, error) {
	return s.transition(ctx, orgID, id, business.InvoiceStatusSent, business.InvoiceStatusIssued)
}

// MarkViewed records that the client opened a sent invoice.
func (s *InvoiceService) MarkViewed(ctx context.Context, orgID, id uuid.UUID) (*business.Invoice, error) {
	return s.transition(ctx, orgID, id, business.InvoiceStatusViewed, business.InvoiceStatusSent)
}

// Cancel voids an invoice. Paid invoices are terminal and cannot be
// cancelled; cancelling an already cancelled invoice is a no-op success.
func (s *InvoiceService) Cancel(ctx context.Context, orgID, id uuid.UUID) (*business.Invoice, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	invoice, err := s.load(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if invoice.Status == business.InvoiceStatusCancelled {
		return invoice, nil
	}
	if invoice.Status == business.InvoiceStatusPaid {
		return nil, business.NewInvalidTransition(string(invoice.Status), string(business.InvoiceStatusCancelled))
	}

	invoice.Status = business.InvoiceStatusCancelled
	invoice.UpdatedAt = s.now()

	if err := s.store.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to cancel invoice: %w", err)
	}

	s.logger.Info("Invoice cancelled", zap.String("invoice_id", id.String()))
	return invoice, nil
}

// ConvertToTaxInvoice upgrades a standard or simplified invoice to a
// ZATCA tax invoice. The operation is one-shot and irreversible: it
// requires an issued invoice, so the totals encoded into the QR payload
// can no longer change, and an organization holding a registered tax
// number, which is frozen onto the invoice alongside the payload. A
// second call fails and leaves the QR payload unchanged.
func (s *InvoiceService) ConvertToTaxInvoice(ctx context.Context, orgID, id uuid.UUID) (*business.Invoice, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	invoice, err := s.load(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if invoice.InvoiceType == business.InvoiceTypeTax {
		return nil, business.ErrAlreadyConverted
	}
	if invoice.InvoiceType == business.InvoiceTypeCreditNote || invoice.InvoiceType == business.InvoiceTypeDebitNote {
		return nil, business.NewValidationError("invoice_type", "only standard or simplified invoices can become tax invoices")
	}
	if invoice.Status == business.InvoiceStatusDraft || invoice.Status == business.InvoiceStatusCancelled {
		return nil, business.NewInvalidTransition(string(invoice.Status), "convert_to_tax")
	}

	org, err := s.store.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org.TaxNumber == "" {
		return nil, business.ErrMissingTaxID
	}

	qr, err := s.zatca.GenerateQR(invoice.SellerName, org.TaxNumber, invoice.IssueDate, invoice.Totals.TotalAmount, invoice.Totals.VATAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tax QR: %w", err)
	}

	invoice.InvoiceType = business.InvoiceTypeTax
	invoice.SellerTaxNumber = org.TaxNumber
	invoice.QRCode = qr
	invoice.ZatcaUUID = newID().String()
	invoice.UpdatedAt = s.now()

	if err := s.store.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to convert invoice: %w", err)
	}

	s.logger.Info("Invoice converted to tax invoice",
		zap.String("invoice_id", id.String()),
		zap.String("zatca_uuid", invoice.ZatcaUUID))

	return invoice, nil
}

// transition applies a delivery status change after validating the
// derived current status against the allow-list. Reapplying the target
// status is a no-op success.
func (s *InvoiceService) transition(ctx context.Context, orgID, id uuid.UUID, target business.InvoiceStatus, allowedFrom ...business.InvoiceStatus) (*business.Invoice, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	invoice, err := s.load(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if invoice.Status == target {
		return invoice, nil
	}

	allowed := false
	for _, from := range allowedFrom {
		if invoice.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, business.NewInvalidTransition(string(invoice.Status), string(target))
	}

	invoice.Status = target
	invoice.UpdatedAt = s.now()

	if err := s.store.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.logger.Info("Invoice status changed",
		zap.String("invoice_id", id.String()),
		zap.String("status", string(target)))

	return invoice, nil
}

// load fetches an invoice and rederives everything the datastore is not
// trusted for: totals from raw items and percents, paid amount from the
// remaining payments, and overdue status from the current time.
func (s *InvoiceService) load(ctx context.Context, orgID, id uuid.UUID) (*business.Invoice, error) {
	invoice, err := s.store.GetInvoice(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return s.derive(ctx, invoice)
}

func (s *InvoiceService) derive(ctx context.Context, invoice business.Invoice) (*business.Invoice, error) {
	totals, err := s.calculator.Compute(invoice.Items, invoice.DiscountPercent, invoice.VATPercent)
	if err != nil {
		return nil, err
	}
	invoice.Totals = totals

	payments, err := s.store.ListPaymentsByInvoice(ctx, invoice.OrganizationID, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	invoice.PaidAmount = paid

	invoice.Status = business.DeriveInvoiceStatus(paid, totals.TotalAmount, invoice.DueDate, s.now(), invoice.Status)
	return &invoice, nil
}
