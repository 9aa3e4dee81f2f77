package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	StatusDraft         = "Draft"
	StatusSent          = "Sent"
	StatusPaid          = "Paid"
	StatusPartiallyPaid = "Partially Paid"
	StatusOverdue       = "Overdue"
	StatusCancelled     = "Cancelled"
)

// Bill types. Cash bills are settled at issue time; credit bills carry a
// balance until payments clear them.
const (
	BillTypeCash   = "CASH"
	BillTypeCredit = "CREDIT"
)

// Invoice is the header of a sales document for one party. The monetary
// fields are sums of the corresponding line fields and satisfy
// GrandTotal = Subtotal - TotalDiscount + TotalTax + RoundOff.
type Invoice struct {
	ID            string
	CompanyID     string
	InvoiceNo     string // unique within the store
	Date          time.Time
	PartyID       string
	TaxType       string // gst.TaxTypeGST or gst.TaxTypeNonGST
	BillType      string // CASH, CREDIT
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	RoundOff      decimal.Decimal
	GrandTotal    decimal.Decimal
	PaidAmount    decimal.Decimal
	BalanceDue    decimal.Decimal // max(0, GrandTotal - PaidAmount)
	Status        string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvoiceItem is one priced line within an invoice. ProductName and HSNCode
// are snapshotted at line-creation time and survive later product renames.
type InvoiceItem struct {
	ID              string
	InvoiceID       string
	LineNo          int // insertion order; significant for printed output
	ProductID       string
	ProductName     string
	HSNCode         string
	Quantity        decimal.Decimal
	Unit            string
	Rate            decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxPercent      decimal.Decimal
	TaxAmount       decimal.Decimal
	CGSTAmount      decimal.Decimal
	SGSTAmount      decimal.Decimal
	IGSTAmount      decimal.Decimal
	Amount          decimal.Decimal // line grand total
}
