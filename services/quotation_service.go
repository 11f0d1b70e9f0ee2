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

// defaultQuotationValidity is applied when a quotation is created without
// an explicit validity deadline.
const defaultQuotationValidity = 30 * 24 * time.Hour

// QuotationService owns the quotation lifecycle: drafting, delivery
// transitions, expiry and the one-shot conversion into an invoice.
type QuotationService struct {
	store      store.Store
	logger     *zap.Logger
	calculator *TotalsCalculator
	locks      *entityLocks
	now        clock
}

// NewQuotationService creates a new quotation service
func NewQuotationService(st store.Store) *QuotationService {
	return &QuotationService{
		store:      st,
		logger:     logger.Log,
		calculator: NewTotalsCalculator(),
		locks:      newEntityLocks(),
		now:        time.Now,
	}
}

// Create creates a new quotation in draft.
func (s *QuotationService) Create(ctx context.Context, p params.QuotationCreateParams) (*business.Quotation, error) {
	if p.OrganizationID == uuid.Nil {
		return nil, business.NewValidationError("organization_id", "must not be empty")
	}
	if p.ClientName == "" {
		return nil, business.NewValidationError("client_name", "must not be empty")
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
	validUntil := now.Add(defaultQuotationValidity)
	if p.ValidUntil != nil {
		validUntil = *p.ValidUntil
	}

	seq, err := s.store.NextQuotationNumber(ctx, p.OrganizationID, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to get next quotation number: %w", err)
	}

	quotation := business.Quotation{
		ID:              newID(),
		OrganizationID:  p.OrganizationID,
		Number:          formatDocumentNumber(constants.QuotationNumberPrefix, now.Year(), seq),
		ClientID:        p.ClientID,
		ClientName:      p.ClientName,
		Items:           items,
		DiscountPercent: p.DiscountPercent,
		VATPercent:      p.VATPercent,
		ValidUntil:      validUntil,
		Status:          business.QuotationStatusDraft,
		Totals:          totals,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.CreateQuotation(ctx, quotation); err != nil {
		return nil, fmt.Errorf("failed to create quotation: %w", err)
	}

	s.logger.Info("Quotation created",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("number", quotation.Number),
		zap.String("organization_id", p.OrganizationID.String()))

	return &quotation, nil
}

// Get returns the quotation snapshot with expiry derived and totals
// recomputed from its raw fields.
func (s *QuotationService) Get(ctx context.Context, orgID, id uuid.UUID) (*business.Quotation, error) {
	return s.load(ctx, orgID, id)
}

// List returns all quotations for the organization with derived statuses.
func (s *QuotationService) List(ctx context.Context, orgID uuid.UUID) ([]business.Quotation, error) {
	quotations, err := s.store.ListQuotations(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}

	for i := range quotations {
		quotations[i].Status = business.DeriveQuotationStatus(quotations[i].ValidUntil, s.now(), quotations[i].Status)
		totals, err := s.calculator.Compute(quotations[i].Items, quotations[i].DiscountPercent, quotations[i].VATPercent)
		if err != nil {
			return nil, err
		}
		quotations[i].Totals = totals
	}
	return quotations, nil
}

// Update replaces the mutable fields of a draft or sent quotation. Items
// are replaced as a set.
func (s *QuotationService) Update(ctx context.Context, p params.QuotationUpdateParams) (*business.Quotation, error) {
	unlock := s.locks.Lock(p.QuotationID)
	defer unlock()

	quotation, err := s.load(ctx, p.OrganizationID, p.QuotationID)
	if err != nil {
		return nil, err
	}

	if quotation.Status != business.QuotationStatusDraft && quotation.Status != business.QuotationStatusSent {
		return nil, business.NewInvalidTransition(string(quotation.Status), "update")
	}

	if p.ClientName == "" {
		return nil, business.NewValidationError("client_name", "must not be empty")
	}

	items, err := toLineItems(p.Items)
	if err != nil {
		return nil, err
	}

	totals, err := s.calculator.Compute(items, p.DiscountPercent, p.VATPercent)
	if err != nil {
		return nil, err
	}

	quotation.ClientID = p.ClientID
	quotation.ClientName = p.ClientName
	quotation.Items = items
	quotation.DiscountPercent = p.DiscountPercent
	quotation.VATPercent = p.VATPercent
	if p.ValidUntil != nil {
		quotation.ValidUntil = *p.ValidUntil
	}
	quotation.Totals = totals
	quotation.UpdatedAt = s.now()

	if err := s.store.UpdateQuotation(ctx, *quotation); err != nil {
		return nil, fmt.Errorf("failed to update quotation: %w", err)
	}
	return quotation, nil
}

// Send marks a draft quotation as sent to the client.
func (s *QuotationService) Send(ctx context.Context, orgID, id uuid.UUID) (*business.Quotation, error) {
	return s.transition(ctx, orgID, id, business.QuotationStatusSent, business.QuotationStatusDraft)
}

// MarkViewed records that the client opened a sent quotation.
func (s *QuotationService) MarkViewed(ctx context.Context, orgID, id uuid.UUID) (*business.Quotation, error) {
	return s.transition(ctx, orgID, id, business.QuotationStatusViewed, business.QuotationStatusSent)
}

// Accept records client acceptance of a sent or viewed quotation.
func (s *QuotationService) Accept(ctx context.Context, orgID, id uuid.UUID) (*business.Quotation, error) {
	return s.transition(ctx, orgID, id, business.QuotationStatusAccepted,
		business.QuotationStatusSent, business.QuotationStatusViewed)
}

// Reject records client rejection of a sent or viewed quotation.
func (s *QuotationService) Reject(ctx context.Context, orgID, id uuid.UUID) (*business.Quotation, error) {
	return s.transition(ctx, orgID, id, business.QuotationStatusRejected,
		business.QuotationStatusSent, business.QuotationStatusViewed)
}

// ConvertToInvoice converts an accepted quotation into a new draft
// invoice, copying the client snapshot and items verbatim. The conversion
// is one-shot: a converted quotation is terminal and a second call fails.
// The invoice is not auto-issued.
func (s *QuotationService) ConvertToInvoice(ctx context.Context, orgID, id uuid.UUID, dueDate time.Time) (*business.Invoice, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	quotation, err := s.load(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if quotation.Status == business.QuotationStatusConverted {
		return nil, business.ErrAlreadyConverted
	}
	if quotation.Status != business.QuotationStatusAccepted {
		return nil, business.NewInvalidTransition(string(quotation.Status), string(business.QuotationStatusConverted))
	}

	now := s.now()
	seq, err := s.store.NextInvoiceNumber(ctx, orgID, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to get next invoice number: %w", err)
	}

	quotationID := quotation.ID
	invoice := business.Invoice{
		ID:              newID(),
		OrganizationID:  orgID,
		Number:          formatDocumentNumber(constants.InvoiceNumberPrefix, now.Year(), seq),
		QuotationID:     &quotationID,
		ClientID:        quotation.ClientID,
		ClientName:      quotation.ClientName,
		Items:           append([]business.LineItem(nil), quotation.Items...),
		DiscountPercent: quotation.DiscountPercent,
		VATPercent:      quotation.VATPercent,
		InvoiceType:     business.InvoiceTypeStandard,
		DueDate:         dueDate,
		Status:          business.InvoiceStatusDraft,
		PaidAmount:      decimal.Zero,
		Totals:          quotation.Totals,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	invoiceID := invoice.ID
	quotation.Status = business.QuotationStatusConverted
	quotation.ConvertedInvoiceID = &invoiceID
	quotation.UpdatedAt = now

	if err := s.store.ConvertQuotation(ctx, *quotation, invoice); err != nil {
		return nil, fmt.Errorf("failed to convert quotation: %w", err)
	}

	s.logger.Info("Quotation converted to invoice",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.Number))

	return &invoice, nil
}

// transition applies a status change after validating the derived current
// status against the allow-list. Reapplying the target status is a no-op
// success.
func (s *QuotationService) transition(ctx context.Context, orgID, id uuid.UUID, target business.QuotationStatus, allowedFrom ...business.QuotationStatus) (*business.Quotation, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	quotation, err := s.load(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if quotation.Status == target {
		return quotation, nil
	}

	allowed := false
	for _, from := range allowedFrom {
		if quotation.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, business.NewInvalidTransition(string(quotation.Status), string(target))
	}

	quotation.Status = target
	quotation.UpdatedAt = s.now()

	if err := s.store.UpdateQuotation(ctx, *quotation); err != nil {
		return nil, fmt.Errorf("failed to update quotation: %w", err)
	}

	s.logger.Info("Quotation status changed",
		zap.String("quotation_id", id.String()),
		zap.String("status", string(target)))

	return quotation, nil
}

// load fetches a quotation, derives expiry against the current time and
// recomputes totals from the raw persisted fields.
func (s *QuotationService) load(ctx context.Context, orgID, id uuid.UUID) (*business.Quotation, error) {
	quotation, err := s.store.GetQuotation(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	quotation.Status = business.DeriveQuotationStatus(quotation.ValidUntil, s.now(), quotation.Status)

	totals, err := s.calculator.Compute(quotation.Items, quotation.DiscountPercent, quotation.VATPercent)
	if err != nil {
		return nil, err
	}
	quotation.Totals = totals

	return &quotation, nil
}
