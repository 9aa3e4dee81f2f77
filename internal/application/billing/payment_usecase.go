package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/application/dto"
	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
	"github.com/gstdesk/gstdesk-api/pkg/logger"
)

const paymentIDWidth = 4

// Settlement classifies a payment against the linked invoice's balance.
type Settlement struct {
	Remaining  decimal.Decimal
	IsExact    bool
	IsOverpaid bool
}

// DetectOverpayment compares an incoming amount with the balance still due.
// Remaining = balance due - amount; negative means overpaid by that much.
// Overpayment is allowed; the caller decides whether to warn. Only the
// invoice's stored balance clamps at zero, in settleInvoice.
func DetectOverpayment(balanceDue, amount decimal.Decimal) Settlement {
	remaining := balanceDue.Sub(amount)
	s := Settlement{Remaining: remaining}
	switch {
	case remaining.IsZero():
		s.IsExact = true
	case remaining.IsNegative():
		s.IsOverpaid = true
	}
	return s
}

// PaymentUseCase records money in and out and keeps linked invoices'
// paid/balance/status in step.
type PaymentUseCase struct {
	txRunner    TxRunner
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
	partyRepo   repository.PartyRepository
	log         *logger.Logger
}

// NewPaymentUseCase builds the use case.
func NewPaymentUseCase(
	txRunner TxRunner,
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	partyRepo repository.PartyRepository,
	log *logger.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		txRunner:    txRunner,
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		partyRepo:   partyRepo,
		log:         log,
	}
}

// kindPrefix maps the payment direction onto the reference prefix.
func kindPrefix(paymentType string) string {
	if paymentType == entity.PaymentTypePayment {
		return "PAY"
	}
	return "RCP"
}

// Record persists a payment or receipt. When an invoice is linked the
// invoice's paid amount, balance due and status are recomputed in the same
// transaction.
func (uc *PaymentUseCase) Record(ctx context.Context, companyID string, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := dto.Validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	party, err := uc.partyRepo.GetByID(in.PartyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	var linked *entity.Invoice
	if in.InvoiceID != "" {
		linked, err = uc.invoiceRepo.GetByID(in.InvoiceID)
		if err != nil {
			return nil, err
		}
		if linked == nil {
			return nil, fmt.Errorf("%w: linked invoice", domain.ErrNotFound)
		}
		if linked.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if linked.PartyID != in.PartyID {
			return nil, fmt.Errorf("%w: invoice belongs to a different party", domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		PartyID:   in.PartyID,
		InvoiceID: in.InvoiceID,
		Amount:    in.Amount,
		Date:      date,
		Mode:      defaultStr(in.Mode, entity.ModeCash),
		Type:      in.Type,
		RefNo:     in.RefNo,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var settlement Settlement
	err = uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		prefix := PaymentIDPrefix(kindPrefix(in.Type), date)
		last, err := paymentRepo.LastPaymentID(companyID, prefix)
		if err != nil {
			return err
		}
		payment.PaymentID = nextSequential(last, prefix, paymentIDWidth)
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		if linked == nil {
			return nil
		}
		settlement = DetectOverpayment(linked.BalanceDue, in.Amount)
		paid, err := paymentRepo.SumForInvoice(linked.ID)
		if err != nil {
			return err
		}
		settleInvoice(linked, paid)
		linked.UpdatedAt = now
		return invoiceRepo.Update(linked)
	})
	if err != nil {
		return nil, err
	}

	if settlement.IsOverpaid {
		uc.log.Warn().
			Str("payment_id", payment.PaymentID).
			Str("invoice_no", linked.InvoiceNo).
			Str("amount", in.Amount.StringFixed(2)).
			Msg("payment exceeds invoice balance")
	}
	resp := uc.toResponse(payment, party.Name)
	if linked != nil {
		resp.InvoiceNo = linked.InvoiceNo
		resp.Remaining = settlement.Remaining
		resp.Overpaid = settlement.IsOverpaid
	}
	return resp, nil
}

// Get fetches one payment.
func (uc *PaymentUseCase) Get(companyID, id string) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	partyName := ""
	if party, _ := uc.partyRepo.GetByID(payment.PartyID); party != nil {
		partyName = party.Name
	}
	return uc.toResponse(payment, partyName), nil
}

// List returns payments, optionally filtered by direction, newest first.
func (uc *PaymentUseCase) List(companyID, typeFilter string) ([]*dto.PaymentResponse, error) {
	list, err := uc.paymentRepo.ListByCompany(companyID, typeFilter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, uc.toResponse(p, ""))
	}
	return out, nil
}

// Update edits a payment's amount, date, mode, reference and notes, then
// re-settles the linked invoice, if any. Party and invoice links stay fixed.
func (uc *PaymentUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := dto.Validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	payment.Amount = in.Amount
	payment.Date = date
	payment.Mode = defaultStr(in.Mode, payment.Mode)
	payment.RefNo = in.RefNo
	payment.Notes = in.Notes
	payment.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		if err := paymentRepo.Update(payment); err != nil {
			return err
		}
		if payment.InvoiceID == "" {
			return nil
		}
		inv, err := invoiceRepo.GetByID(payment.InvoiceID)
		if err != nil || inv == nil {
			return err
		}
		paid, err := paymentRepo.SumForInvoice(inv.ID)
		if err != nil {
			return err
		}
		settleInvoice(inv, paid)
		inv.UpdatedAt = payment.UpdatedAt
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}

	partyName := ""
	if party, _ := uc.partyRepo.GetByID(payment.PartyID); party != nil {
		partyName = party.Name
	}
	return uc.toResponse(payment, partyName), nil
}

// Delete removes a payment and re-settles the linked invoice, if any.
func (uc *PaymentUseCase) Delete(ctx context.Context, companyID, id string) error {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}
	if payment.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		if err := paymentRepo.Delete(id); err != nil {
			return err
		}
		if payment.InvoiceID == "" {
			return nil
		}
		inv, err := invoiceRepo.GetByID(payment.InvoiceID)
		if err != nil || inv == nil {
			return err
		}
		paid, err := paymentRepo.SumForInvoice(inv.ID)
		if err != nil {
			return err
		}
		settleInvoice(inv, paid)
		inv.UpdatedAt = time.Now()
		return invoiceRepo.Update(inv)
	})
}

func (uc *PaymentUseCase) toResponse(p *entity.Payment, partyName string) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:        p.ID,
		PaymentID: p.PaymentID,
		CompanyID: p.CompanyID,
		PartyID:   p.PartyID,
		PartyName: partyName,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Date:      p.Date.Format("2006-01-02"),
		Mode:      p.Mode,
		Type:      p.Type,
		RefNo:     p.RefNo,
		Notes:     p.Notes,
	}
}
