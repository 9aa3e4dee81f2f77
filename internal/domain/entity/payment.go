package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment directions: PAYMENT = money out to a supplier, RECEIPT = money in
// from a customer.
const (
	PaymentTypePayment = "PAYMENT"
	PaymentTypeReceipt = "RECEIPT"
)

// Payment modes.
const (
	ModeCash         = "Cash"
	ModeBankTransfer = "Bank Transfer"
	ModeCheque       = "Cheque"
	ModeUPI          = "UPI"
	ModeCard         = "Card"
)

// Payment is a money movement tied to a party and optionally one invoice.
// When InvoiceID is set the amount is classified against that invoice's
// balance due (partial/exact/overpaid). Overpayment is allowed but flagged.
type Payment struct {
	ID        string
	PaymentID string // external-facing reference, e.g. "RCP-20260115-0001"
	CompanyID string
	PartyID   string
	InvoiceID string // empty when not linked to an invoice
	Amount    decimal.Decimal
	Date      time.Time
	Mode      string
	Type      string // PAYMENT, RECEIPT
	RefNo     string // cheque number, UPI reference, etc.
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
