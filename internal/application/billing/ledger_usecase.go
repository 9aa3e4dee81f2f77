package billing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/application/dto"
	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
)

// LedgerUseCase derives party balances and statements from invoices and
// payments. Nothing here writes; the ledger is always recomputed from the
// source documents.
type LedgerUseCase struct {
	partyRepo   repository.PartyRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

// NewLedgerUseCase builds the use case.
func NewLedgerUseCase(
	partyRepo repository.PartyRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *LedgerUseCase {
	return &LedgerUseCase{partyRepo: partyRepo, invoiceRepo: invoiceRepo, paymentRepo: paymentRepo}
}

// PartyBalance computes one party's position:
// signed opening + invoice totals - payment totals.
func (uc *LedgerUseCase) PartyBalance(companyID, partyID string) (*dto.PartyBalanceResponse, error) {
	party, err := uc.partyRepo.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return uc.balanceFor(party)
}

func (uc *LedgerUseCase) balanceFor(party *entity.Party) (*dto.PartyBalanceResponse, error) {
	opening := party.OpeningBalance
	if party.BalanceType == entity.BalanceTypeCredit {
		opening = opening.Neg()
	}
	invoiced, err := uc.invoiceRepo.SumGrandTotalByParty(party.ID)
	if err != nil {
		return nil, err
	}
	// Receipts reduce what the party owes; payments made to the party reduce
	// what the business owes, so they sit on opposite sides of the balance.
	received, err := uc.paymentRepo.SumByParty(party.ID, entity.PaymentTypeReceipt)
	if err != nil {
		return nil, err
	}
	paidOut, err := uc.paymentRepo.SumByParty(party.ID, entity.PaymentTypePayment)
	if err != nil {
		return nil, err
	}
	balance := opening.Add(invoiced).Sub(received).Add(paidOut).Round(2)
	return &dto.PartyBalanceResponse{
		PartyID:        party.ID,
		PartyName:      party.Name,
		OpeningBalance: party.OpeningBalance,
		BalanceType:    party.BalanceType,
		InvoiceTotal:   invoiced.Round(2),
		ReceiptTotal:   received.Round(2),
		PaymentTotal:   paidOut.Round(2),
		Balance:        balance,
		BalanceDisplay: balanceDisplay(balance),
	}, nil
}

// Statement builds the dated entry list for one party with a running
// balance, oldest first.
func (uc *LedgerUseCase) Statement(companyID, partyID string) (*dto.PartyStatementResponse, error) {
	party, err := uc.partyRepo.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	balance, err := uc.balanceFor(party)
	if err != nil {
		return nil, err
	}

	invoices, err := uc.invoiceRepo.ListByCompany(companyID, repository.InvoiceListFilter{PartyID: partyID})
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListByCompany(companyID, "")
	if err != nil {
		return nil, err
	}

	var entries []dto.LedgerEntry
	for _, inv := range invoices {
		if inv.Status == entity.StatusCancelled {
			continue
		}
		entries = append(entries, dto.LedgerEntry{
			Date:      inv.Date.Format("2006-01-02"),
			Kind:      "Invoice",
			Reference: inv.InvoiceNo,
			Debit:     inv.GrandTotal,
		})
	}
	for _, p := range payments {
		if p.PartyID != partyID {
			continue
		}
		// Money paid out to the party lands on the debit side: it reduces the
		// business's payable the same way an invoice raises the receivable.
		entry := dto.LedgerEntry{
			Date:        p.Date.Format("2006-01-02"),
			Reference:   p.PaymentID,
			Description: p.Notes,
		}
		if p.Type == entity.PaymentTypePayment {
			entry.Kind = "Payment"
			entry.Debit = p.Amount
		} else {
			entry.Kind = "Receipt"
			entry.Credit = p.Amount
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Reference < entries[j].Reference
	})

	running := party.OpeningBalance
	if party.BalanceType == entity.BalanceTypeCredit {
		running = running.Neg()
	}
	for i := range entries {
		running = running.Add(entries[i].Debit).Sub(entries[i].Credit)
		entries[i].Balance = running.Round(2)
	}

	return &dto.PartyStatementResponse{Party: *balance, Entries: entries}, nil
}

// PaymentSummary totals the company's payments by direction and by mode.
func (uc *LedgerUseCase) PaymentSummary(companyID string) (*dto.PaymentSummaryResponse, error) {
	payments, err := uc.paymentRepo.ListByCompany(companyID, "")
	if err != nil {
		return nil, err
	}
	out := &dto.PaymentSummaryResponse{
		TotalReceived: decimal.Zero,
		TotalPaid:     decimal.Zero,
		ByMode:        map[string]decimal.Decimal{},
	}
	for _, p := range payments {
		if p.Type == entity.PaymentTypePayment {
			out.TotalPaid = out.TotalPaid.Add(p.Amount)
		} else {
			out.TotalReceived = out.TotalReceived.Add(p.Amount)
		}
		out.ByMode[p.Mode] = out.ByMode[p.Mode].Add(p.Amount)
		out.Count++
	}
	out.TotalReceived = out.TotalReceived.Round(2)
	out.TotalPaid = out.TotalPaid.Round(2)
	for mode, amount := range out.ByMode {
		out.ByMode[mode] = amount.Round(2)
	}
	return out, nil
}

// Summary aggregates receivables (positive balances) and payables (negative)
// across every party of the company.
func (uc *LedgerUseCase) Summary(companyID string) (*dto.LedgerSummaryResponse, error) {
	parties, err := uc.partyRepo.ListByCompany(companyID, "")
	if err != nil {
		return nil, err
	}
	out := &dto.LedgerSummaryResponse{
		TotalReceivable: decimal.Zero,
		TotalPayable:    decimal.Zero,
	}
	for _, party := range parties {
		b, err := uc.balanceFor(party)
		if err != nil {
			return nil, err
		}
		switch {
		case b.Balance.GreaterThan(decimal.Zero):
			out.TotalReceivable = out.TotalReceivable.Add(b.Balance)
			out.Receivables = append(out.Receivables, *b)
		case b.Balance.LessThan(decimal.Zero):
			out.TotalPayable = out.TotalPayable.Add(b.Balance.Abs())
			out.Payables = append(out.Payables, *b)
		}
	}
	return out, nil
}
