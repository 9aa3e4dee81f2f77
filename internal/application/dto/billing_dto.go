package dto

import "github.com/shopspring/decimal"

// InvoiceItemRequest is one line of an invoice request. Rate defaults to the
// product's sales rate and TaxPercent to the product's tax rate when omitted.
type InvoiceItemRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxPercent      *decimal.Decimal `json:"tax_percent,omitempty"`
}

// CreateInvoiceRequest body for POST /api/invoices. InvoiceNo is optional;
// when empty the next sequential number for the financial year is assigned.
type CreateInvoiceRequest struct {
	PartyID   string               `json:"party_id" validate:"required"`
	InvoiceNo string               `json:"invoice_no,omitempty"`
	Date      string               `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	BillType  string               `json:"bill_type,omitempty" validate:"omitempty,oneof=CASH CREDIT"`
	Notes     string               `json:"notes,omitempty"`
	Items     []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest body for PUT /api/invoices/:id. Items replace the
// existing lines wholesale.
type UpdateInvoiceRequest = CreateInvoiceRequest

// InvoiceItemResponse one line in responses, in original order.
type InvoiceItemResponse struct {
	ID              string          `json:"id"`
	LineNo          int             `json:"line_no"`
	ProductID       string          `json:"product_id,omitempty"`
	ProductName     string          `json:"product_name"`
	HSNCode         string          `json:"hsn_code,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Amount          decimal.Decimal `json:"amount"`
}

// InvoiceResponse invoice with party name and lines.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	CompanyID     string                `json:"company_id"`
	InvoiceNo     string                `json:"invoice_no"`
	Date          string                `json:"date"`
	PartyID       string                `json:"party_id"`
	PartyName     string                `json:"party_name,omitempty"`
	TaxType       string                `json:"tax_type"`
	BillType      string                `json:"bill_type"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TotalDiscount decimal.Decimal       `json:"total_discount"`
	TotalTax      decimal.Decimal       `json:"total_tax"`
	CGST          decimal.Decimal       `json:"cgst"`
	SGST          decimal.Decimal       `json:"sgst"`
	IGST          decimal.Decimal       `json:"igst"`
	RoundOff      decimal.Decimal       `json:"round_off"`
	GrandTotal    decimal.Decimal       `json:"grand_total"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	BalanceDue    decimal.Decimal       `json:"balance_due"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
}

// HSNSummaryLine is one row of the tax summary grouped by HSN and rate.
type HSNSummaryLine struct {
	HSNCode      string          `json:"hsn_code"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalTax     decimal.Decimal `json:"total_tax"`
}
