package dto

import "github.com/shopspring/decimal"

// PartyBalanceResponse is the running position of one party.
// Balance = signed opening + invoices - receipts + payments made out.
// Positive means the party owes the business.
type PartyBalanceResponse struct {
	PartyID        string          `json:"party_id"`
	PartyName      string          `json:"party_name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	BalanceType    string          `json:"balance_type"`
	InvoiceTotal   decimal.Decimal `json:"invoice_total"`
	ReceiptTotal   decimal.Decimal `json:"receipt_total"`
	PaymentTotal   decimal.Decimal `json:"payment_total"`
	Balance        decimal.Decimal `json:"balance"`
	BalanceDisplay string          `json:"balance_display"`
}

// LedgerEntry is one dated row of a party statement.
type LedgerEntry struct {
	Date        string          `json:"date"`
	Kind        string          `json:"kind"` // Invoice, Payment, Receipt
	Reference   string          `json:"reference"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description,omitempty"`
}

// PartyStatementResponse is the full statement for one party.
type PartyStatementResponse struct {
	Party   PartyBalanceResponse `json:"party"`
	Entries []LedgerEntry        `json:"entries"`
}

// PaymentSummaryResponse aggregates payments by direction and by mode.
type PaymentSummaryResponse struct {
	TotalReceived decimal.Decimal            `json:"total_received"`
	TotalPaid     decimal.Decimal            `json:"total_paid"`
	ByMode        map[string]decimal.Decimal `json:"by_mode"`
	Count         int                        `json:"count"`
}

// LedgerSummaryResponse aggregates the company's position across parties.
type LedgerSummaryResponse struct {
	TotalReceivable decimal.Decimal        `json:"total_receivable"`
	TotalPayable    decimal.Decimal        `json:"total_payable"`
	Receivables     []PartyBalanceResponse `json:"receivables"`
	Payables        []PartyBalanceResponse `json:"payables"`
}
