package dto

import "github.com/shopspring/decimal"

// CreatePaymentRequest body for POST /api/payments. Type RECEIPT records
// money in from a customer, PAYMENT money out to a supplier.
type CreatePaymentRequest struct {
	PartyID   string          `json:"party_id" validate:"required"`
	InvoiceID string          `json:"invoice_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Mode      string          `json:"mode,omitempty" validate:"omitempty,oneof=Cash 'Bank Transfer' Cheque UPI Card"`
	Type      string          `json:"type" validate:"required,oneof=PAYMENT RECEIPT"`
	RefNo     string          `json:"reference_no,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// UpdatePaymentRequest body for PUT /api/payments/:id. The party and invoice
// links are fixed at record time; editing them would rewrite ledger history.
type UpdatePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date,omitempty"`
	Mode   string          `json:"mode,omitempty" validate:"omitempty,oneof=Cash 'Bank Transfer' Cheque UPI Card"`
	RefNo  string          `json:"reference_no,omitempty"`
	Notes  string          `json:"notes,omitempty"`
}

// PaymentResponse payment in responses. Overpaid and Remaining describe the
// linked invoice's state after this payment, when one is linked.
type PaymentResponse struct {
	ID        string          `json:"id"`
	PaymentID string          `json:"payment_id"`
	CompanyID string          `json:"company_id"`
	PartyID   string          `json:"party_id"`
	PartyName string          `json:"party_name,omitempty"`
	InvoiceID string          `json:"invoice_id,omitempty"`
	InvoiceNo string          `json:"invoice_no,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Mode      string          `json:"mode"`
	Type      string          `json:"type"`
	RefNo     string          `json:"reference_no,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Remaining decimal.Decimal `json:"remaining,omitempty"`
	Overpaid  bool            `json:"overpaid,omitempty"`
}
