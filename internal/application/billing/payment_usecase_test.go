package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstdesk/gstdesk-api/internal/application/dto"
	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
)

func TestDetectOverpayment(t *testing.T) {
	tests := []struct {
		name       string
		balance    string
		amount     string
		remaining  string
		isExact    bool
		isOverpaid bool
	}{
		{name: "partial", balance: "500", amount: "200", remaining: "300"},
		{name: "exact", balance: "500", amount: "500", remaining: "0", isExact: true},
		{name: "overpaid", balance: "500", amount: "600", remaining: "-100", isOverpaid: true},
		{name: "overpaid by 20", balance: "480", amount: "500", remaining: "-20", isOverpaid: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DetectOverpayment(d(tc.balance), d(tc.amount))
			assert.True(t, s.Remaining.Equal(d(tc.remaining)), "remaining %s", s.Remaining)
			assert.Equal(t, tc.isExact, s.IsExact)
			assert.Equal(t, tc.isOverpaid, s.IsOverpaid)
		})
	}
}

func TestRecordReceiptAgainstInvoice(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	inv, err := f.invoice.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		PartyID: "party-intra", Date: "2026-01-15",
		Items: []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: d("2"), DiscountPercent: d("10")}},
	})
	require.NoError(t, err) // grand total 212

	partial, err := f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "party-intra", InvoiceID: inv.ID,
		Amount: d("100"), Date: "2026-01-16", Type: entity.PaymentTypeReceipt,
	})
	require.NoError(t, err)
	assert.Equal(t, "RCP-20260116-0001", partial.PaymentID)
	assert.True(t, partial.Remaining.Equal(d("112")), "remaining %s", partial.Remaining)
	assert.False(t, partial.Overpaid)

	got, err := f.invoice.Get(testCompanyID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPartiallyPaid, got.Status)
	assert.True(t, got.PaidAmount.Equal(d("100")))
	assert.True(t, got.BalanceDue.Equal(d("112")))

	settling, err := f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "party-intra", InvoiceID: inv.ID,
		Amount: d("112"), Date: "2026-01-16", Type: entity.PaymentTypeReceipt,
	})
	require.NoError(t, err)
	assert.Equal(t, "RCP-20260116-0002", settling.PaymentID)
	assert.True(t, settling.Remaining.IsZero())

	got, err = f.invoice.Get(testCompanyID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, got.Status)
	assert.True(t, got.BalanceDue.IsZero())
}

func TestRecordOverpaymentIsAllowedButFlagged(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	inv, err := f.invoice.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		PartyID: "party-intra", Date: "2026-01-15",
		Items: []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: d("1")}},
	})
	require.NoError(t, err) // grand total 118

	over, err := f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "party-intra", InvoiceID: inv.ID,
		Amount: d("200"), Date: "2026-01-16", Type: entity.PaymentTypeReceipt,
	})
	require.NoError(t, err)
	assert.True(t, over.Overpaid)
	// 118 due, 200 paid: overpaid by 82.
	assert.True(t, over.Remaining.Equal(d("-82")), "remaining %s", over.Remaining)

	got, err := f.invoice.Get(testCompanyID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, got.Status)
	assert.True(t, got.BalanceDue.IsZero())
	assert.True(t, got.PaidAmount.Equal(d("200")))
}

func TestRecordPaymentValidation(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	_, err := f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "party-intra", Amount: d("0"), Type: entity.PaymentTypeReceipt,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "party-intra", Amount: d("-5"), Type: entity.PaymentTypeReceipt,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "no-such-party", Amount: d("10"), Type: entity.PaymentTypeReceipt,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordRejectsInvoiceOfDifferentParty(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	inv, err := f.invoice.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		PartyID: "party-intra", Date: "2026-01-15",
		Items: []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: d("1")}},
	})
	require.NoError(t, err)

	_, err = f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "party-inter", InvoiceID: inv.ID,
		Amount: d("50"), Type: entity.PaymentTypeReceipt,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaymentIDPrefixByDirection(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	// A supplier payment (money out) gets the PAY prefix; a standalone
	// receipt without an invoice link gets RCP.
	pay, err := f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "party-inter", Amount: d("750"), Date: "2026-01-16",
		Type: entity.PaymentTypePayment, Mode: entity.ModeUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, "PAY-20260116-0001", pay.PaymentID)
	assert.Equal(t, entity.ModeUPI, pay.Mode)

	rcp, err := f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "party-intra", Amount: d("100"), Date: "2026-01-16",
		Type: entity.PaymentTypeReceipt,
	})
	require.NoError(t, err)
	assert.Equal(t, "RCP-20260116-0001", rcp.PaymentID)
}

func TestDeletePaymentResettlesInvoice(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	inv, err := f.invoice.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		PartyID: "party-intra", Date: "2026-01-15",
		Items: []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: d("1")}},
	})
	require.NoError(t, err) // grand total 118

	payment, err := f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "party-intra", InvoiceID: inv.ID,
		Amount: d("118"), Date: "2026-01-16", Type: entity.PaymentTypeReceipt,
	})
	require.NoError(t, err)

	got, err := f.invoice.Get(testCompanyID, inv.ID)
	require.NoError(t, err)
	require.Equal(t, entity.StatusPaid, got.Status)

	require.NoError(t, f.payment.Delete(ctx, testCompanyID, payment.ID))

	got, err = f.invoice.Get(testCompanyID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSent, got.Status)
	assert.True(t, got.BalanceDue.Equal(d("118")))
}

func TestUpdatePaymentResettlesInvoice(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	inv, err := f.invoice.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		PartyID: "party-intra", Date: "2026-01-15",
		Items: []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: d("2"), DiscountPercent: d("10")}},
	})
	require.NoError(t, err) // grand total 212

	rcpt, err := f.payment.Record(ctx, testCompanyID, dto.CreatePaymentRequest{
		PartyID: "party-intra", InvoiceID: inv.ID,
		Amount: d("100"), Date: "2026-01-16", Type: entity.PaymentTypeReceipt,
	})
	require.NoError(t, err)

	updated, err := f.payment.Update(ctx, testCompanyID, rcpt.ID, dto.UpdatePaymentRequest{
		Amount: d("212"), Date: "2026-01-17", Mode: entity.ModeUPI,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(d("212")))
	assert.Equal(t, entity.ModeUPI, updated.Mode)

	got, err := f.invoice.Get(testCompanyID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, got.Status)
	assert.True(t, got.BalanceDue.IsZero())

	_, err = f.payment.Update(ctx, testCompanyID, rcpt.ID, dto.UpdatePaymentRequest{Amount: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
