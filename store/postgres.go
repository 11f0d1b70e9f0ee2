package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mizanhq/mizan-api/types/business"
	"github.com/shopspring/decimal"
)

// PostgresStore is the pgx-backed Store implementation. Line items are
// stored as a JSONB column on their parent document so they are replaced
// as a set on every update.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NewPostgresStore connects to Postgres and verifies the connection.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) GetOrganization(ctx context.Context, id uuid.UUID) (business.Organization, error) {
	var org business.Organization
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, tax_number, address FROM organizations WHERE id = $1`,
		id,
	).Scan(&org.ID, &org.Name, &org.TaxNumber, &org.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return business.Organization{}, ErrNotFound
	}
	if err != nil {
		return business.Organization{}, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

func (s *PostgresStore) UpsertOrganization(ctx context.Context, org business.Organization) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO organizations (id, name, tax_number, address)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET name = $2, tax_number = $3, address = $4`,
		org.ID, org.Name, org.TaxNumber, org.Address,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert organization: %w", err)
	}
	return nil
}

const quotationColumns = `id, organization_id, number, client_id, client_name, items,
	discount_percent::text, vat_percent::text, valid_until, status, converted_invoice_id,
	created_at, updated_at`

func (s *PostgresStore) CreateQuotation(ctx context.Context, q business.Quotation) error {
	items, err := json.Marshal(q.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal quotation items: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO quotations (id, organization_id, number, client_id, client_name, items,
			discount_percent, vat_percent, valid_until, status, converted_invoice_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9, $10, $11, $12, $13)`,
		q.ID, q.OrganizationID, q.Number, q.ClientID, q.ClientName, items,
		q.DiscountPercent.String(), q.VATPercent.String(), q.ValidUntil, q.Status,
		q.ConvertedInvoiceID, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quotation: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetQuotation(ctx context.Context, orgID, id uuid.UUID) (business.Quotation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+quotationColumns+` FROM quotations WHERE id = $1 AND organization_id = $2`,
		id, orgID,
	)
	return scanQuotation(row)
}

func (s *PostgresStore) UpdateQuotation(ctx context.Context, q business.Quotation) error {
	return updateQuotation(ctx, s.pool, q)
}

func (s *PostgresStore) ListQuotations(ctx context.Context, orgID uuid.UUID) ([]business.Quotation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+quotationColumns+` FROM quotations WHERE organization_id = $1 ORDER BY created_at`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	defer rows.Close()

	var result []business.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	return result, rows.Err()
}

func (s *PostgresStore) NextQuotationNumber(ctx context.Context, orgID uuid.UUID, year int) (int64, error) {
	return s.nextNumber(ctx, "quotation", orgID, year)
}

const invoiceColumns = `id, organization_id, number, quotation_id, client_id, client_name,
	client_address, client_tax_number, items, discount_percent::text, vat_percent::text,
	invoice_type, issue_date, due_date, status, paid_amount::text, seller_name,
	seller_tax_number, seller_address, qr_code, zatca_uuid, related_invoice_id,
	credit_reason, created_at, updated_at`

func (s *PostgresStore) CreateInvoice(ctx context.Context, inv business.Invoice) error {
	return insertInvoice(ctx, s.pool, inv)
}

func (s *PostgresStore) GetInvoice(ctx context.Context, orgID, id uuid.UUID) (business.Invoice, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND organization_id = $2`,
		id, orgID,
	)
	return scanInvoice(row)
}

func (s *PostgresStore) UpdateInvoice(ctx context.Context, inv business.Invoice) error {
	return updateInvoice(ctx, s.pool, inv)
}

func (s *PostgresStore) ListInvoices(ctx context.Context, orgID uuid.UUID) ([]business.Invoice, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE organization_id = $1 ORDER BY created_at`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var result []business.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	return result, rows.Err()
}

func (s *PostgresStore) NextInvoiceNumber(ctx context.Context, orgID uuid.UUID, year int) (int64, error) {
	return s.nextNumber(ctx, "invoice", orgID, year)
}

func (s *PostgresStore) ConvertQuotation(ctx context.Context, q business.Quotation, inv business.Invoice) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		if err := updateQuotation(ctx, tx, q); err != nil {
			return err
		}
		return insertInvoice(ctx, tx, inv)
	})
}

func (s *PostgresStore) CreatePaymentWithInvoice(ctx context.Context, p business.Payment, inv business.Invoice) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO payments (id, organization_id, invoice_id, amount, payment_date,
				method, reference, notes, created_at)
			 VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9)`,
			p.ID, p.OrganizationID, p.InvoiceID, p.Amount.String(), p.PaymentDate,
			p.Method, p.Reference, p.Notes, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		return updateInvoice(ctx, tx, inv)
	})
}

func (s *PostgresStore) DeletePaymentWithInvoice(ctx context.Context, orgID, paymentID uuid.UUID, inv business.Invoice) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM payments WHERE id = $1 AND organization_id = $2`,
			paymentID, orgID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		return updateInvoice(ctx, tx, inv)
	})
}

func (s *PostgresStore) GetPayment(ctx context.Context, orgID, id uuid.UUID) (business.Payment, error) {
	var (
		p      business.Payment
		amount string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, organization_id, invoice_id, amount::text, payment_date, method, reference, notes, created_at
		 FROM payments WHERE id = $1 AND organization_id = $2`,
		id, orgID,
	).Scan(&p.ID, &p.OrganizationID, &p.InvoiceID, &amount, &p.PaymentDate, &p.Method, &p.Reference, &p.Notes, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return business.Payment{}, ErrNotFound
	}
	if err != nil {
		return business.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}

	p.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return business.Payment{}, fmt.Errorf("failed to parse payment amount: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ListPaymentsByInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) ([]business.Payment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, organization_id, invoice_id, amount::text, payment_date, method, reference, notes, created_at
		 FROM payments WHERE invoice_id = $1 AND organization_id = $2 ORDER BY created_at, id`,
		invoiceID, orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var result []business.Payment
	for rows.Next() {
		var (
			p      business.Payment
			amount string
		)
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.InvoiceID, &amount, &p.PaymentDate,
			&p.Method, &p.Reference, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse payment amount: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *PostgresStore) nextNumber(ctx context.Context, kind string, orgID uuid.UUID, year int) (int64, error) {
	var next int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO document_counters (organization_id, kind, year, value)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (organization_id, kind, year) DO UPDATE SET value = document_counters.value + 1
		 RETURNING value`,
		orgID, kind, year,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next %s number: %w", kind, err)
	}
	return next, nil
}

func (s *PostgresStore) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func updateQuotation(ctx context.Context, db dbtx, q business.Quotation) error {
	items, err := json.Marshal(q.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal quotation items: %w", err)
	}

	tag, err := db.Exec(ctx,
		`UPDATE quotations SET client_id = $3, client_name = $4, items = $5,
			discount_percent = $6::numeric, vat_percent = $7::numeric, valid_until = $8,
			status = $9, converted_invoice_id = $10, updated_at = $11
		 WHERE id = $1 AND organization_id = $2`,
		q.ID, q.OrganizationID, q.ClientID, q.ClientName, items,
		q.DiscountPercent.String(), q.VATPercent.String(), q.ValidUntil,
		q.Status, q.ConvertedInvoiceID, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func insertInvoice(ctx context.Context, db dbtx, inv business.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal invoice items: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO invoices (id, organization_id, number, quotation_id, client_id, client_name,
			client_address, client_tax_number, items, discount_percent, vat_percent, invoice_type,
			issue_date, due_date, status, paid_amount, seller_name, seller_tax_number, seller_address,
			qr_code, zatca_uuid, related_invoice_id, credit_reason, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11::numeric, $12,
			$13, $14, $15, $16::numeric, $17, $18, $19, $20, $21, $22, $23, $24, $25)`,
		inv.ID, inv.OrganizationID, inv.Number, inv.QuotationID, inv.ClientID, inv.ClientName,
		inv.ClientAddress, inv.ClientTaxNumber, items, inv.DiscountPercent.String(),
		inv.VATPercent.String(), inv.InvoiceType, inv.IssueDate, inv.DueDate, inv.Status,
		inv.PaidAmount.String(), inv.SellerName, inv.SellerTaxNumber, inv.SellerAddress,
		inv.QRCode, inv.ZatcaUUID, inv.RelatedInvoiceID, inv.CreditReason, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

func updateInvoice(ctx context.Context, db dbtx, inv business.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal invoice items: %w", err)
	}

	tag, err := db.Exec(ctx,
		`UPDATE invoices SET client_id = $3, client_name = $4, client_address = $5,
			client_tax_number = $6, items = $7, discount_percent = $8::numeric,
			vat_percent = $9::numeric, invoice_type = $10, issue_date = $11, due_date = $12,
			status = $13, paid_amount = $14::numeric, seller_name = $15, seller_tax_number = $16,
			seller_address = $17, qr_code = $18, zatca_uuid = $19, updated_at = $20
		 WHERE id = $1 AND organization_id = $2`,
		inv.ID, inv.OrganizationID, inv.ClientID, inv.ClientName, inv.ClientAddress,
		inv.ClientTaxNumber, items, inv.DiscountPercent.String(), inv.VATPercent.String(),
		inv.InvoiceType, inv.IssueDate, inv.DueDate, inv.Status, inv.PaidAmount.String(),
		inv.SellerName, inv.SellerTaxNumber, inv.SellerAddress, inv.QRCode, inv.ZatcaUUID,
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuotation(row rowScanner) (business.Quotation, error) {
	var (
		q                   business.Quotation
		items               []byte
		discountPct, vatPct string
	)
	err := row.Scan(&q.ID, &q.OrganizationID, &q.Number, &q.ClientID, &q.ClientName, &items,
		&discountPct, &vatPct, &q.ValidUntil, &q.Status, &q.ConvertedInvoiceID,
		&q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return business.Quotation{}, ErrNotFound
	}
	if err != nil {
		return business.Quotation{}, fmt.Errorf("failed to scan quotation: %w", err)
	}

	if err := json.Unmarshal(items, &q.Items); err != nil {
		return business.Quotation{}, fmt.Errorf("failed to unmarshal quotation items: %w", err)
	}
	if q.DiscountPercent, err = decimal.NewFromString(discountPct); err != nil {
		return business.Quotation{}, fmt.Errorf("failed to parse discount percent: %w", err)
	}
	if q.VATPercent, err = decimal.NewFromString(vatPct); err != nil {
		return business.Quotation{}, fmt.Errorf("failed to parse vat percent: %w", err)
	}
	return q, nil
}

func scanInvoice(row rowScanner) (business.Invoice, error) {
	var (
		inv                          business.Invoice
		items                        []byte
		discountPct, vatPct, paidAmt string
	)
	err := row.Scan(&inv.ID, &inv.OrganizationID, &inv.Number, &inv.QuotationID, &inv.ClientID,
		&inv.ClientName, &inv.ClientAddress, &inv.ClientTaxNumber, &items, &discountPct, &vatPct,
		&inv.InvoiceType, &inv.IssueDate, &inv.DueDate, &inv.Status, &paidAmt, &inv.SellerName,
		&inv.SellerTaxNumber, &inv.SellerAddress, &inv.QRCode, &inv.ZatcaUUID,
		&inv.RelatedInvoiceID, &inv.CreditReason, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return business.Invoice{}, ErrNotFound
	}
	if err != nil {
		return business.Invoice{}, fmt.Errorf("failed to scan invoice: %w", err)
	}

	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return business.Invoice{}, fmt.Errorf("failed to unmarshal invoice items: %w", err)
	}
	if inv.DiscountPercent, err = decimal.NewFromString(discountPct); err != nil {
		return business.Invoice{}, fmt.Errorf("failed to parse discount percent: %w", err)
	}
	if inv.VATPercent, err = decimal.NewFromString(vatPct); err != nil {
		return business.Invoice{}, fmt.Errorf("failed to parse vat percent: %w", err)
	}
	if inv.PaidAmount, err = decimal.NewFromString(paidAmt); err != nil {
		return business.Invoice{}, fmt.Errorf("failed to parse paid amount: %w", err)
	}
	return inv, nil
}
