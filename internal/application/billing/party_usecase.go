package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/application/dto"
	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
	"github.com/gstdesk/gstdesk-api/pkg/inr"
	"github.com/gstdesk/gstdesk-api/pkg/validate"
)

// PartyUseCase covers party CRUD plus the delete guard (a party referenced
// by invoices or payments cannot be removed).
type PartyUseCase struct {
	partyRepo   repository.PartyRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

// NewPartyUseCase builds the use case.
func NewPartyUseCase(
	partyRepo repository.PartyRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *PartyUseCase {
	return &PartyUseCase{partyRepo: partyRepo, invoiceRepo: invoiceRepo, paymentRepo: paymentRepo}
}

// checkFormats runs the field-level format checks that carry user-facing
// messages. Empty optional fields pass.
func checkPartyFormats(in dto.CreatePartyRequest) error {
	checks := []struct {
		value string
		fn    validate.Checked
	}{
		{in.GSTNumber, validate.GSTINChecked},
		{in.PAN, validate.PANChecked},
		{in.Mobile, validate.MobileChecked},
		{in.Email, validate.EmailChecked},
		{in.Pincode, validate.PincodeChecked},
	}
	for _, c := range checks {
		if ok, msg := c.fn(c.value); !ok {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
		}
	}
	return nil
}

// Create registers a new party. Names are unique per company ignoring case
// and surrounding whitespace.
func (uc *PartyUseCase) Create(companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: party name is required", domain.ErrInvalidInput)
	}
	if err := checkPartyFormats(in); err != nil {
		return nil, err
	}
	if err := dto.Validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.partyRepo.FindByName(companyID, in.Name, "")
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	now := time.Now()
	party := &entity.Party{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           in.Name,
		Mobile:         in.Mobile,
		Email:          in.Email,
		Type:           defaultStr(in.Type, entity.PartyTypeCustomer),
		GSTNumber:      strings.ToUpper(strings.TrimSpace(in.GSTNumber)),
		PAN:            strings.ToUpper(strings.TrimSpace(in.PAN)),
		Address:        in.Address,
		City:           in.City,
		State:          in.State,
		Pincode:        in.Pincode,
		OpeningBalance: in.OpeningBalance,
		BalanceType:    defaultStr(in.BalanceType, entity.BalanceTypeDebit),
		CreditLimit:    in.CreditLimit,
		CreditDays:     in.CreditDays,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.partyRepo.Create(party); err != nil {
		return nil, err
	}
	party.IsGSTRegistered = party.GSTNumber != ""
	return uc.toResponse(party, decimal.Zero), nil
}

// Get fetches one party with its current ledger balance.
func (uc *PartyUseCase) Get(companyID, id string) (*dto.PartyResponse, error) {
	party, err := uc.partyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	balance, err := uc.balance(party)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(party, balance), nil
}

// List returns the company's parties, optionally filtered by type.
func (uc *PartyUseCase) List(companyID, typeFilter string) ([]*dto.PartyResponse, error) {
	list, err := uc.partyRepo.ListByCompany(companyID, typeFilter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartyResponse, 0, len(list))
	for _, p := range list {
		balance, err := uc.balance(p)
		if err != nil {
			return nil, err
		}
		out = append(out, uc.toResponse(p, balance))
	}
	return out, nil
}

// Update rewrites a party. The duplicate-name guard skips the party itself.
func (uc *PartyUseCase) Update(companyID, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	party, err := uc.partyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: party name is required", domain.ErrInvalidInput)
	}
	if err := checkPartyFormats(in); err != nil {
		return nil, err
	}
	existing, err := uc.partyRepo.FindByName(companyID, in.Name, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	party.Name = in.Name
	party.Mobile = in.Mobile
	party.Email = in.Email
	party.Type = defaultStr(in.Type, party.Type)
	party.GSTNumber = strings.ToUpper(strings.TrimSpace(in.GSTNumber))
	party.PAN = strings.ToUpper(strings.TrimSpace(in.PAN))
	party.Address = in.Address
	party.City = in.City
	party.State = in.State
	party.Pincode = in.Pincode
	party.OpeningBalance = in.OpeningBalance
	party.BalanceType = defaultStr(in.BalanceType, party.BalanceType)
	party.CreditLimit = in.CreditLimit
	party.CreditDays = in.CreditDays
	party.UpdatedAt = time.Now()
	if err := uc.partyRepo.Update(party); err != nil {
		return nil, err
	}
	party.IsGSTRegistered = party.GSTNumber != ""
	balance, err := uc.balance(party)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(party, balance), nil
}

// Delete removes a party unless invoices or payments still reference it.
func (uc *PartyUseCase) Delete(companyID, id string) error {
	party, err := uc.partyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if party == nil {
		return domain.ErrNotFound
	}
	if party.CompanyID != companyID {
		return domain.ErrForbidden
	}
	invoices, payments, err := uc.partyRepo.CountReferences(id)
	if err != nil {
		return err
	}
	if invoices > 0 || payments > 0 {
		return fmt.Errorf("%w: party has %d invoices and %d payments", domain.ErrConflict, invoices, payments)
	}
	return uc.partyRepo.Delete(id)
}

// balance computes signed opening + invoices - receipts + payments made out.
// Positive means the party owes the business; paying a supplier shrinks the
// payable rather than growing it.
func (uc *PartyUseCase) balance(party *entity.Party) (decimal.Decimal, error) {
	opening := party.OpeningBalance
	if party.BalanceType == entity.BalanceTypeCredit {
		opening = opening.Neg()
	}
	invoiced, err := uc.invoiceRepo.SumGrandTotalByParty(party.ID)
	if err != nil {
		return decimal.Zero, err
	}
	received, err := uc.paymentRepo.SumByParty(party.ID, entity.PaymentTypeReceipt)
	if err != nil {
		return decimal.Zero, err
	}
	paidOut, err := uc.paymentRepo.SumByParty(party.ID, entity.PaymentTypePayment)
	if err != nil {
		return decimal.Zero, err
	}
	return opening.Add(invoiced).Sub(received).Add(paidOut), nil
}

func (uc *PartyUseCase) toResponse(p *entity.Party, balance decimal.Decimal) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		Name:            p.Name,
		Mobile:          p.Mobile,
		Email:           p.Email,
		Type:            p.Type,
		GSTNumber:       p.GSTNumber,
		PAN:             p.PAN,
		Address:         p.Address,
		City:            p.City,
		State:           p.State,
		Pincode:         p.Pincode,
		OpeningBalance:  p.OpeningBalance,
		BalanceType:     p.BalanceType,
		CreditLimit:     p.CreditLimit,
		CreditDays:      p.CreditDays,
		IsGSTRegistered: p.IsGSTRegistered,
		Balance:         balance.Round(2),
		BalanceDisplay:  balanceDisplay(balance),
	}
}

// balanceDisplay renders a signed balance in ledger convention:
// "1,500.00 Dr" when the party owes, "1,500.00 Cr" when we owe.
func balanceDisplay(balance decimal.Decimal) string {
	suffix := "Dr"
	if balance.IsNegative() {
		suffix = "Cr"
	}
	return inr.Format(balance.Abs().Round(2)) + " " + suffix
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
