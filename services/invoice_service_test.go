package services

import (
	"context"
	"testing"
	"time"

	"github.com/mizanhq/mizan-api/types/api/params"
	"github.com/mizanhq/mizan-api/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createInvoice(t *testing.T, env *testEnv) *business.Invoice {
	t.Helper()
	inv, err := env.invoices.Create(context.Background(), params.InvoiceCreateParams{
		OrganizationID:  env.org.ID,
		ClientName:      "Globex LLC",
		Items:           testItems(),
		DiscountPercent: dec("10"),
		VATPercent:      dec("15"),
		DueDate:         frozenTime.Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return inv
}

func issueInvoice(t *testing.T, env *testEnv) *business.Invoice {
	t.Helper()
	inv := createInvoice(t, env)
	issued, err := env.invoices.Issue(context.Background(), env.org.ID, inv.ID)
	require.NoError(t, err)
	return issued
}

func sentInvoice(t *testing.T, env *testEnv) *business.Invoice {
	t.Helper()
	inv := issueInvoice(t, env)
	sent, err := env.invoices.Send(context.Background(), env.org.ID, inv.ID)
	require.NoError(t, err)
	return sent
}

func TestInvoiceService_Create(t *testing.T) {
	env := newTestEnv()

	inv := createInvoice(t, env)

	assert.Equal(t, "INV-2026-0001", inv.Number)
	assert.Equal(t, business.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, business.InvoiceTypeStandard, inv.InvoiceType)
	assert.Empty(t, inv.SellerName, "seller snapshot is frozen at issuance, not creation")
	assert.True(t, inv.Totals.TotalAmount.Equal(dec("1035")))
}

func TestInvoiceService_Create_RejectsRestrictedTypes(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for _, invoiceType := range []string{"tax", "credit_note", "bogus"} {
		_, err := env.invoices.Create(ctx, params.InvoiceCreateParams{
			OrganizationID: env.org.ID,
			ClientName:     "Globex LLC",
			Items:          testItems(),
			InvoiceType:    invoiceType,
		})
		var verr *business.ValidationError
		require.ErrorAs(t, err, &verr, "type %q should be rejected", invoiceType)
		assert.Equal(t, "invoice_type", verr.Field)
	}
}

func TestInvoiceService_Issue(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	inv := createInvoice(t, env)
	issued, err := env.invoices.Issue(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, business.InvoiceStatusIssued, issued.Status)
	assert.Equal(t, env.org.Name, issued.SellerName)
	assert.Equal(t, env.org.TaxNumber, issued.SellerTaxNumber)
	assert.Equal(t, env.org.Address, issued.SellerAddress)
	assert.True(t, issued.IssueDate.Equal(frozenTime))

	// issuing again is a no-op success
	again, err := env.invoices.Issue(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, business.InvoiceStatusIssued, again.Status)
}

func TestInvoiceService_Issue_SellerSnapshotFrozen(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	issued := issueInvoice(t, env)

	// renaming the organization after issuance must not leak into the
	// issued invoice
	renamed := env.org
	renamed.Name = "Acme Rebranded"
	require.NoError(t, env.store.UpsertOrganization(ctx, renamed))

	got, err := env.invoices.Get(ctx, env.org.ID, issued.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Trading Co", got.SellerName)
}

func TestInvoiceService_Issue_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	noItems, err := env.invoices.Create(ctx, params.InvoiceCreateParams{
		OrganizationID: env.org.ID,
		ClientName:     "Globex LLC",
	})
	require.NoError(t, err)
	_, err = env.invoices.Issue(ctx, env.org.ID, noItems.ID)
	var verr *business.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)

	noClient, err := env.invoices.Create(ctx, params.InvoiceCreateParams{
		OrganizationID: env.org.ID,
		Items:          testItems(),
	})
	require.NoError(t, err)
	_, err = env.invoices.Issue(ctx, env.org.ID, noClient.ID)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "client_name", verr.Field)
}

func TestInvoiceService_Update_DraftOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	inv := createInvoice(t, env)

	updated, err := env.invoices.Update(ctx, params.InvoiceUpdateParams{
		OrganizationID: env.org.ID,
		InvoiceID:      inv.ID,
		ClientName:     "Initech",
		Items: []params.LineItemParams{
			{Description: "License", Quantity: dec("2"), UnitPrice: dec("250")},
		},
		VATPercent: dec("15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Initech", updated.ClientName)
	assert.True(t, updated.Totals.TotalAmount.Equal(dec("575")))

	_, err = env.invoices.Issue(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)

	_, err = env.invoices.Update(ctx, params.InvoiceUpdateParams{
		OrganizationID: env.org.ID,
		InvoiceID:      inv.ID,
		ClientName:     "Initech",
		Items:          testItems(),
	})
	var terr *business.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "issued", terr.Current)
}

func TestInvoiceService_Cancel(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	inv := sentInvoice(t, env)

	cancelled, err := env.invoices.Cancel(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, business.InvoiceStatusCancelled, cancelled.Status)

	// cancelling again is a no-op
	again, err := env.invoices.Cancel(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, business.InvoiceStatusCancelled, again.Status)

	// cancelled is terminal
	_, err = env.invoices.Send(ctx, env.org.ID, inv.ID)
	var terr *business.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
}

func TestInvoiceService_Cancel_PaidIsTerminal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	inv := sentInvoice(t, env)
	_, err := env.payments.AddPayment(ctx, params.PaymentCreateParams{
		OrganizationID: env.org.ID,
		InvoiceID:      inv.ID,
		Amount:         inv.Totals.TotalAmount,
	})
	require.NoError(t, err)

	_, err = env.invoices.Cancel(ctx, env.org.ID, inv.ID)
	var terr *business.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "paid", terr.Current)
}

func TestInvoiceService_OverdueDerivedOnRead(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	inv := sentInvoice(t, env)

	env.advance(inv.DueDate.Add(time.Hour))

	got, err := env.invoices.Get(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, business.InvoiceStatusOverdue, got.Status)

	// the stored row is untouched
	stored, err := env.store.GetInvoice(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, business.InvoiceStatusSent, stored.Status)

	// paying in full clears overdue
	_, err = env.payments.AddPayment(ctx, params.PaymentCreateParams{
		OrganizationID: env.org.ID,
		InvoiceID:      inv.ID,
		Amount:         inv.Totals.TotalAmount,
	})
	require.NoError(t, err)

	got, err = env.invoices.Get(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, business.InvoiceStatusPaid, got.Status)
}

func TestInvoiceService_ConvertToTaxInvoice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	inv := issueInvoice(t, env)

	converted, err := env.invoices.ConvertToTaxInvoice(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, business.InvoiceTypeTax, converted.InvoiceType)
	assert.NotEmpty(t, converted.QRCode)
	assert.NotEmpty(t, converted.ZatcaUUID)
	assert.Equal(t, env.org.TaxNumber, converted.SellerTaxNumber)

	// the QR payload must validate and carry the invoice amounts
	fields, err := NewZatcaService().ValidateQR(converted.QRCode)
	require.NoError(t, err)
	assert.Equal(t, env.org.Name, fields.SellerName)
	assert.Equal(t, env.org.TaxNumber, fields.VATNumber)
	assert.True(t, fields.TotalWithVAT.Equal(converted.Totals.TotalAmount))
	assert.True(t, fields.VATAmount.Equal(converted.Totals.VATAmount))
}

func TestInvoiceService_ConvertToTaxInvoice_OneShot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	inv := issueInvoice(t, env)
	converted, err := env.invoices.ConvertToTaxInvoice(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)

	_, err = env.invoices.ConvertToTaxInvoice(ctx, env.org.ID, inv.ID)
	assert.ErrorIs(t, err, business.ErrAlreadyConverted)

	// the original QR payload is untouched by the failed second attempt
	got, err := env.invoices.Get(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, converted.QRCode, got.QRCode)
	assert.Equal(t, converted.ZatcaUUID, got.ZatcaUUID)
}

func TestInvoiceService_ConvertToTaxInvoice_RequiresTaxNumber(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	unregistered := business.Organization{ID: newID(), Name: "No Tax Co"}
	require.NoError(t, env.store.UpsertOrganization(ctx, unregistered))

	inv, err := env.invoices.Create(ctx, params.InvoiceCreateParams{
		OrganizationID: unregistered.ID,
		ClientName:     "Globex LLC",
		Items:          testItems(),
		VATPercent:     dec("15"),
	})
	require.NoError(t, err)
	_, err = env.invoices.Issue(ctx, unregistered.ID, inv.ID)
	require.NoError(t, err)

	_, err = env.invoices.ConvertToTaxInvoice(ctx, unregistered.ID, inv.ID)
	assert.ErrorIs(t, err, business.ErrMissingTaxID)

	// the failed conversion changed nothing
	got, err := env.invoices.Get(ctx, unregistered.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, business.InvoiceTypeStandard, got.InvoiceType)
	assert.Empty(t, got.QRCode)
}

func TestInvoiceService_ConvertToTaxInvoice_DraftRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	draft := createInvoice(t, env)

	_, err := env.invoices.ConvertToTaxInvoice(ctx, env.org.ID, draft.ID)
	var terr *business.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "draft", terr.Current)

	got, err := env.invoices.Get(ctx, env.org.ID, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, business.InvoiceTypeStandard, got.InvoiceType)
	assert.Empty(t, got.QRCode)
}

// The QR payload must always carry the invoice's totals: once a tax
// invoice exists its items are immutable, so an edit attempt fails and
// the stored payload still matches the recomputed amounts.
func TestInvoiceService_TaxInvoiceItemsImmutable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	inv := issueInvoice(t, env)
	converted, err := env.invoices.ConvertToTaxInvoice(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)

	_, err = env.invoices.Update(ctx, params.InvoiceUpdateParams{
		OrganizationID: env.org.ID,
		InvoiceID:      inv.ID,
		ClientName:     "Globex LLC",
		Items: []params.LineItemParams{
			{Description: "Consulting hours", Quantity: dec("100"), UnitPrice: dec("100")},
		},
		DiscountPercent: dec("10"),
		VATPercent:      dec("15"),
	})
	var terr *business.InvalidTransitionError
	require.ErrorAs(t, err, &terr)

	got, err := env.invoices.Get(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.Totals.TotalAmount.Equal(converted.Totals.TotalAmount))

	fields, err := NewZatcaService().ValidateQR(got.QRCode)
	require.NoError(t, err)
	assert.True(t, fields.TotalWithVAT.Equal(got.Totals.TotalAmount),
		"QR total %s != invoice total %s", fields.TotalWithVAT, got.Totals.TotalAmount)
	assert.True(t, fields.VATAmount.Equal(got.Totals.VATAmount))
}

func TestInvoiceService_ConvertToTaxInvoice_CancelledRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	inv := issueInvoice(t, env)
	_, err := env.invoices.Cancel(ctx, env.org.ID, inv.ID)
	require.NoError(t, err)

	_, err = env.invoices.ConvertToTaxInvoice(ctx, env.org.ID, inv.ID)
	var terr *business.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "cancelled", terr.Current)
}
