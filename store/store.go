// Package store defines the persistence contract the lifecycle engine
// relies on. Documents store raw items and percent fields as the source of
// truth; every total is recomputed by the engine on read-after-write and
// never trusted as a stored cache.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mizanhq/mizan-api/types/business"
)

var (
	// ErrNotFound is returned when an entity does not exist or belongs to
	// a different organization.
	ErrNotFound = errors.New("store: not found")
)

// Store is the datastore contract for the financial-document engine. Every
// read is scoped by organization id; entities of another tenant behave as
// missing.
type Store interface {
	GetOrganization(ctx context.Context, id uuid.UUID) (business.Organization, error)
	UpsertOrganization(ctx context.Context, org business.Organization) error

	CreateQuotation(ctx context.Context, q business.Quotation) error
	GetQuotation(ctx context.Context, orgID, id uuid.UUID) (business.Quotation, error)
	UpdateQuotation(ctx context.Context, q business.Quotation) error
	ListQuotations(ctx context.Context, orgID uuid.UUID) ([]business.Quotation, error)
	NextQuotationNumber(ctx context.Context, orgID uuid.UUID, year int) (int64, error)

	CreateInvoice(ctx context.Context, inv business.Invoice) error
	GetInvoice(ctx context.Context, orgID, id uuid.UUID) (business.Invoice, error)
	UpdateInvoice(ctx context.Context, inv business.Invoice) error
	ListInvoices(ctx context.Context, orgID uuid.UUID) ([]business.Invoice, error)
	NextInvoiceNumber(ctx context.Context, orgID uuid.UUID, year int) (int64, error)

	// ConvertQuotation persists the converted quotation and the invoice it
	// produced as a single atomic write.
	ConvertQuotation(ctx context.Context, q business.Quotation, inv business.Invoice) error

	// CreatePaymentWithInvoice persists a new payment together with the
	// recomputed parent invoice as a single atomic write.
	CreatePaymentWithInvoice(ctx context.Context, p business.Payment, inv business.Invoice) error

	// DeletePaymentWithInvoice removes a payment and persists the
	// recomputed parent invoice as a single atomic write.
	DeletePaymentWithInvoice(ctx context.Context, orgID, paymentID uuid.UUID, inv business.Invoice) error

	GetPayment(ctx context.Context, orgID, id uuid.UUID) (business.Payment, error)
	ListPaymentsByInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) ([]business.Payment, error)
}
