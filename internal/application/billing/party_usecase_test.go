package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstdesk/gstdesk-api/internal/application/dto"
	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
)

func newPartyFixture() (*PartyUseCase, *memPartyRepo, *memInvoiceRepo, *memPaymentRepo) {
	parties := newMemPartyRepo()
	invoices := newMemInvoiceRepo()
	payments := newMemPaymentRepo()
	return NewPartyUseCase(parties, invoices, payments), parties, invoices, payments
}

func TestCreatePartyNormalizesAndDefaults(t *testing.T) {
	uc, _, _, _ := newPartyFixture()

	resp, err := uc.Create(testCompanyID, dto.CreatePartyRequest{
		Name:      "Patel Stores",
		GSTNumber: "24aadpf6173e1zt",
		Mobile:    "+91 98765 43210",
	})
	require.NoError(t, err)

	assert.Equal(t, "24AADPF6173E1ZT", resp.GSTNumber)
	assert.Equal(t, entity.PartyTypeCustomer, resp.Type)
	assert.Equal(t, entity.BalanceTypeDebit, resp.BalanceType)
	assert.True(t, resp.IsGSTRegistered)
}

func TestCreatePartyRejectsDuplicateNameIgnoringCase(t *testing.T) {
	uc, _, _, _ := newPartyFixture()

	_, err := uc.Create(testCompanyID, dto.CreatePartyRequest{Name: "Patel Stores"})
	require.NoError(t, err)

	_, err = uc.Create(testCompanyID, dto.CreatePartyRequest{Name: "  patel stores "})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	// Same name under another company is fine.
	_, err = uc.Create("other-co", dto.CreatePartyRequest{Name: "Patel Stores"})
	assert.NoError(t, err)
}

func TestCreatePartyFieldFormats(t *testing.T) {
	uc, _, _, _ := newPartyFixture()

	tests := []struct {
		name string
		in   dto.CreatePartyRequest
	}{
		{"bad gstin", dto.CreatePartyRequest{Name: "A", GSTNumber: "99AADPF6173E1ZT"}},
		{"bad pan", dto.CreatePartyRequest{Name: "B", PAN: "ABC123"}},
		{"bad mobile", dto.CreatePartyRequest{Name: "C", Mobile: "12345"}},
		{"bad pincode", dto.CreatePartyRequest{Name: "D", Pincode: "00010"}},
		{"missing name", dto.CreatePartyRequest{Name: "   "}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(testCompanyID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Optional fields left empty pass.
	_, err := uc.Create(testCompanyID, dto.CreatePartyRequest{Name: "Bare Minimum"})
	assert.NoError(t, err)
}

func TestUpdatePartySkipsSelfInDuplicateCheck(t *testing.T) {
	uc, _, _, _ := newPartyFixture()

	created, err := uc.Create(testCompanyID, dto.CreatePartyRequest{Name: "Patel Stores"})
	require.NoError(t, err)

	// Renaming to its own name is not a duplicate.
	_, err = uc.Update(testCompanyID, created.ID, dto.UpdatePartyRequest{Name: "Patel Stores", Type: entity.PartyTypeBoth})
	assert.NoError(t, err)

	other, err := uc.Create(testCompanyID, dto.CreatePartyRequest{Name: "Mehta Traders"})
	require.NoError(t, err)
	_, err = uc.Update(testCompanyID, other.ID, dto.UpdatePartyRequest{Name: "Patel Stores"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestDeletePartyBlockedWhileReferenced(t *testing.T) {
	uc, parties, _, _ := newPartyFixture()

	created, err := uc.Create(testCompanyID, dto.CreatePartyRequest{Name: "Patel Stores"})
	require.NoError(t, err)

	parties.refs[created.ID] = [2]int{3, 1}
	err = uc.Delete(testCompanyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	parties.refs[created.ID] = [2]int{0, 0}
	assert.NoError(t, uc.Delete(testCompanyID, created.ID))
	_, err = uc.Get(testCompanyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPartyBalanceSignConventions(t *testing.T) {
	uc, parties, invoices, payments := newPartyFixture()

	require.NoError(t, parties.Create(&entity.Party{
		ID: "p1", CompanyID: testCompanyID, Name: "Patel Stores",
		OpeningBalance: d("1000"), BalanceType: entity.BalanceTypeDebit,
	}))
	require.NoError(t, invoices.Create(&entity.Invoice{
		ID: "i1", CompanyID: testCompanyID, PartyID: "p1",
		GrandTotal: d("500"), Status: entity.StatusSent,
	}))
	require.NoError(t, payments.Create(&entity.Payment{
		ID: "pay1", CompanyID: testCompanyID, PartyID: "p1",
		Amount: d("300"), Type: entity.PaymentTypeReceipt,
	}))

	got, err := uc.Get(testCompanyID, "p1")
	require.NoError(t, err)
	// 1000 dr + 500 invoiced - 300 received.
	assert.True(t, got.Balance.Equal(d("1200")), "balance %s", got.Balance)
	assert.Equal(t, "1,200.00 Dr", got.BalanceDisplay)

	// Credit opening flips the sign.
	require.NoError(t, parties.Create(&entity.Party{
		ID: "p2", CompanyID: testCompanyID, Name: "Mehta Traders",
		OpeningBalance: d("2000"), BalanceType: entity.BalanceTypeCredit,
	}))
	got, err = uc.Get(testCompanyID, "p2")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(d("-2000")))
	assert.Equal(t, "2,000.00 Cr", got.BalanceDisplay)
}

func TestListPartiesTypeFilterIncludesBoth(t *testing.T) {
	uc, parties, _, _ := newPartyFixture()

	require.NoError(t, parties.Create(&entity.Party{ID: "c", CompanyID: testCompanyID, Name: "A Customer", Type: entity.PartyTypeCustomer}))
	require.NoError(t, parties.Create(&entity.Party{ID: "s", CompanyID: testCompanyID, Name: "B Supplier", Type: entity.PartyTypeSupplier}))
	require.NoError(t, parties.Create(&entity.Party{ID: "b", CompanyID: testCompanyID, Name: "C Both", Type: entity.PartyTypeBoth}))

	customers, err := uc.List(testCompanyID, entity.PartyTypeCustomer)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	all, err := uc.List(testCompanyID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSupplierPaymentReducesPayable(t *testing.T) {
	uc, parties, _, payments := newPartyFixture()

	require.NoError(t, parties.Create(&entity.Party{
		ID: "sup1", CompanyID: testCompanyID, Name: "Steel Supplier",
		Type: entity.PartyTypeSupplier,
		OpeningBalance: d("800"), BalanceType: entity.BalanceTypeCredit,
	}))
	require.NoError(t, payments.Create(&entity.Payment{
		ID: "pay1", CompanyID: testCompanyID, PartyID: "sup1",
		Amount: d("300"), Type: entity.PaymentTypePayment,
	}))

	got, err := uc.Get(testCompanyID, "sup1")
	require.NoError(t, err)
	// 800 cr opening owed, 300 paid out: 500 still owed.
	assert.True(t, got.Balance.Equal(d("-500")), "balance %s", got.Balance)
	assert.Equal(t, "500.00 Cr", got.BalanceDisplay)
}
