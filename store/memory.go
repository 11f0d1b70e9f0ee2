package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mizanhq/mizan-api/types/business"
)

// MemoryStore is a mutex-guarded in-memory Store used by tests and local
// runs. Snapshots are copied on the way in and out so callers never share
// slices with the store.
type MemoryStore struct {
	mu            sync.RWMutex
	organizations map[uuid.UUID]business.Organization
	quotations    map[uuid.UUID]business.Quotation
	invoices      map[uuid.UUID]business.Invoice
	payments      map[uuid.UUID]business.Payment
	counters      map[string]int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		organizations: make(map[uuid.UUID]business.Organization),
		quotations:    make(map[uuid.UUID]business.Quotation),
		invoices:      make(map[uuid.UUID]business.Invoice),
		payments:      make(map[uuid.UUID]business.Payment),
		counters:      make(map[string]int64),
	}
}

func (s *MemoryStore) GetOrganization(ctx context.Context, id uuid.UUID) (business.Organization, error) {
	if err := ctx.Err(); err != nil {
		return business.Organization{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.organizations[id]
	if !ok {
		return business.Organization{}, ErrNotFound
	}
	return org, nil
}

func (s *MemoryStore) UpsertOrganization(ctx context.Context, org business.Organization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.organizations[org.ID] = org
	return nil
}

func (s *MemoryStore) CreateQuotation(ctx context.Context, q business.Quotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotations[q.ID] = copyQuotation(q)
	return nil
}

func (s *MemoryStore) GetQuotation(ctx context.Context, orgID, id uuid.UUID) (business.Quotation, error) {
	if err := ctx.Err(); err != nil {
		return business.Quotation{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotations[id]
	if !ok || q.OrganizationID != orgID {
		return business.Quotation{}, ErrNotFound
	}
	return copyQuotation(q), nil
}

func (s *MemoryStore) UpdateQuotation(ctx context.Context, q business.Quotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.quotations[q.ID]
	if !ok || existing.OrganizationID != q.OrganizationID {
		return ErrNotFound
	}
	s.quotations[q.ID] = copyQuotation(q)
	return nil
}

func (s *MemoryStore) ListQuotations(ctx context.Context, orgID uuid.UUID) ([]business.Quotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []business.Quotation
	for _, q := range s.quotations {
		if q.OrganizationID == orgID {
			result = append(result, copyQuotation(q))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (s *MemoryStore) NextQuotationNumber(ctx context.Context, orgID uuid.UUID, year int) (int64, error) {
	return s.nextNumber(ctx, "quotation", orgID, year)
}

func (s *MemoryStore) CreateInvoice(ctx context.Context, inv business.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (s *MemoryStore) GetInvoice(ctx context.Context, orgID, id uuid.UUID) (business.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return business.Invoice{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[id]
	if !ok || inv.OrganizationID != orgID {
		return business.Invoice{}, ErrNotFound
	}
	return copyInvoice(inv), nil
}

func (s *MemoryStore) UpdateInvoice(ctx context.Context, inv business.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.invoices[inv.ID]
	if !ok || existing.OrganizationID != inv.OrganizationID {
		return ErrNotFound
	}
	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (s *MemoryStore) ListInvoices(ctx context.Context, orgID uuid.UUID) ([]business.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []business.Invoice
	for _, inv := range s.invoices {
		if inv.OrganizationID == orgID {
			result = append(result, copyInvoice(inv))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (s *MemoryStore) NextInvoiceNumber(ctx context.Context, orgID uuid.UUID, year int) (int64, error) {
	return s.nextNumber(ctx, "invoice", orgID, year)
}

func (s *MemoryStore) ConvertQuotation(ctx context.Context, q business.Quotation, inv business.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.quotations[q.ID]
	if !ok || existing.OrganizationID != q.OrganizationID {
		return ErrNotFound
	}
	s.quotations[q.ID] = copyQuotation(q)
	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (s *MemoryStore) CreatePaymentWithInvoice(ctx context.Context, p business.Payment, inv business.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.invoices[inv.ID]
	if !ok || existing.OrganizationID != inv.OrganizationID {
		return ErrNotFound
	}
	s.payments[p.ID] = p
	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (s *MemoryStore) DeletePaymentWithInvoice(ctx context.Context, orgID, paymentID uuid.UUID, inv business.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok || p.OrganizationID != orgID {
		return ErrNotFound
	}
	delete(s.payments, paymentID)
	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (s *MemoryStore) GetPayment(ctx context.Context, orgID, id uuid.UUID) (business.Payment, error) {
	if err := ctx.Err(); err != nil {
		return business.Payment{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[id]
	if !ok || p.OrganizationID != orgID {
		return business.Payment{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) ListPaymentsByInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) ([]business.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []business.Payment
	for _, p := range s.payments {
		if p.OrganizationID == orgID && p.InvoiceID == invoiceID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (s *MemoryStore) nextNumber(ctx context.Context, kind string, orgID uuid.UUID, year int) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("%s/%s/%d", kind, orgID, year)
	s.counters[key]++
	return s.counters[key], nil
}

func copyQuotation(q business.Quotation) business.Quotation {
	out := q
	out.Items = append([]business.LineItem(nil), q.Items...)
	return out
}

func copyInvoice(inv business.Invoice) business.Invoice {
	out := inv
	out.Items = append([]business.LineItem(nil), inv.Items...)
	return out
}
