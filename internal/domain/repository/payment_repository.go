package repository

import (
	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
)

// PaymentRepository is the persistence port for Payment.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	// ListByCompany returns payments, optionally filtered by type
	// (PAYMENT or RECEIPT; "" for all), newest first.
	ListByCompany(companyID, typeFilter string) ([]*entity.Payment, error)
	ListByInvoice(invoiceID string) ([]*entity.Payment, error)
	Update(payment *entity.Payment) error
	Delete(id string) error
	// SumByParty totals payment amounts for a party, optionally filtered by
	// type, for the ledger balance.
	SumByParty(partyID, typeFilter string) (decimal.Decimal, error)
	// SumForInvoice totals payments applied against one invoice.
	SumForInvoice(invoiceID string) (decimal.Decimal, error)
	CountByParty(partyID string) (int, error)
	// LastPaymentID returns the highest existing payment_id with the given
	// prefix, "" when none, for sequential reference generation.
	LastPaymentID(companyID, prefix string) (string, error)
}
