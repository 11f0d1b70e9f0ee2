package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mizanhq/mizan-api/logger"
	"github.com/mizanhq/mizan-api/store"
	"github.com/mizanhq/mizan-api/types/api/params"
	"github.com/mizanhq/mizan-api/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService applies and reverses payments against invoices. Every
// mutation rederives the invoice's paid amount and status from the full
// payment set and persists payment and invoice in one atomic store write.
// It shares the invoice service's per-entity locks so concurrent payment
// and lifecycle operations on the same invoice serialize.
type PaymentService struct {
	store    store.Store
	logger   *zap.Logger
	invoices *InvoiceService
	locks    *entityLocks
	now      clock
}

// NewPaymentService creates a new payment service
func NewPaymentService(st store.Store, invoices *InvoiceService) *PaymentService {
	return &PaymentService{
		store:    st,
		logger:   logger.Log,
		invoices: invoices,
		locks:    invoices.locks,
		now:      time.Now,
	}
}

// AddPayment records a payment against an invoice. Draft, paid and
// cancelled invoices reject payments; an amount exceeding the remaining
// balance fails with an overpayment error naming the exact remainder.
func (s *PaymentService) AddPayment(ctx context.Context, p params.PaymentCreateParams) (*business.Payment, error) {
	if !p.Amount.IsPositive() {
		return nil, business.NewValidationError("amount", "must be positive")
	}

	unlock := s.locks.Lock(p.InvoiceID)
	defer unlock()

	invoice, err := s.invoices.load(ctx, p.OrganizationID, p.InvoiceID)
	if err != nil {
		return nil, err
	}

	switch invoice.Status {
	case business.InvoiceStatusDraft, business.InvoiceStatusPaid, business.InvoiceStatusCancelled:
		return nil, business.NewInvalidTransition(string(invoice.Status), "add_payment")
	}

	remaining := invoice.Totals.TotalAmount.Sub(invoice.PaidAmount)
	if p.Amount.GreaterThan(remaining) {
		return nil, &business.OverpaymentError{Remaining: remaining, Attempted: p.Amount}
	}

	now := s.now()
	paymentDate := p.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = now
	}

	payment := business.Payment{
		ID:             newID(),
		OrganizationID: p.OrganizationID,
		InvoiceID:      p.InvoiceID,
		Amount:         p.Amount,
		PaymentDate:    paymentDate,
		Method:         p.Method,
		Reference:      p.Reference,
		Notes:          p.Notes,
		CreatedAt:      now,
	}

	invoice.PaidAmount = invoice.PaidAmount.Add(p.Amount)
	invoice.Status = business.DeriveInvoiceStatus(invoice.PaidAmount, invoice.Totals.TotalAmount, invoice.DueDate, now, invoice.Status)
	invoice.UpdatedAt = now

	if err := s.store.CreatePaymentWithInvoice(ctx, payment, *invoice); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", p.InvoiceID.String()),
		zap.String("amount", p.Amount.String()),
		zap.String("invoice_status", string(invoice.Status)))

	return &payment, nil
}

// DeletePayment reverses a recorded payment. The parent invoice's paid
// amount and status are rederived from the payments that remain, so a
// paid invoice can drop back to partially paid, overdue or sent.
// Payments on cancelled invoices cannot be touched.
func (s *PaymentService) DeletePayment(ctx context.Context, orgID, paymentID uuid.UUID) error {
	payment, err := s.store.GetPayment(ctx, orgID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to get payment: %w", err)
	}

	unlock := s.locks.Lock(payment.InvoiceID)
	defer unlock()

	invoice, err := s.invoices.load(ctx, orgID, payment.InvoiceID)
	if err != nil {
		return err
	}

	if invoice.Status == business.InvoiceStatusCancelled {
		return business.NewInvalidTransition(string(invoice.Status), "delete_payment")
	}

	payments, err := s.store.ListPaymentsByInvoice(ctx, orgID, payment.InvoiceID)
	if err != nil {
		return fmt.Errorf("failed to list payments: %w", err)
	}

	paid := decimal.Zero
	for _, existing := range payments {
		if existing.ID == paymentID {
			continue
		}
		paid = paid.Add(existing.Amount)
	}

	now := s.now()
	invoice.PaidAmount = paid
	invoice.Status = business.DeriveInvoiceStatus(paid, invoice.Totals.TotalAmount, invoice.DueDate, now, invoice.Status)
	invoice.UpdatedAt = now

	if err := s.store.DeletePaymentWithInvoice(ctx, orgID, paymentID, *invoice); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	s.logger.Info("Payment deleted",
		zap.String("payment_id", paymentID.String()),
		zap.String("invoice_id", payment.InvoiceID.String()),
		zap.String("invoice_status", string(invoice.Status)))

	return nil
}

// ListPayments returns all payments recorded against an invoice, oldest
// first.
func (s *PaymentService) ListPayments(ctx context.Context, orgID, invoiceID uuid.UUID) ([]business.Payment, error) {
	payments, err := s.store.ListPaymentsByInvoice(ctx, orgID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
