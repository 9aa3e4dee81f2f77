// Package gst implements the monetary arithmetic of Indian GST billing:
// per-line totals (discount before tax), the CGST/SGST/IGST split and
// invoice-level aggregation. The package is pure: it never touches storage
// and never fails on well-formed numeric input; rejecting negative
// quantities or rates is the billing layer's job.
package gst

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
)

// Tax treatment of an invoice.
const (
	TaxTypeGST    = "GST"
	TaxTypeNonGST = "Non-GST"
)

// Breakdown selects how the invoice's total tax is attributed.
type Breakdown int

const (
	// BreakdownNonGST carries no tax attribution at all.
	BreakdownNonGST Breakdown = iota
	// BreakdownIntraState splits tax equally between CGST and SGST.
	BreakdownIntraState
	// BreakdownInterState routes all tax to IGST.
	BreakdownInterState
)

// StandardRates are the GST slabs in force (percent).
var StandardRates = []int{0, 5, 12, 18, 28}

var hundred = decimal.NewFromInt(100)

// LineTotal holds the derived monetary fields of one invoice line.
type LineTotal struct {
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Amount         decimal.Decimal
}

// ComputeLineTotal derives the line's discount, tax and grand total.
// Discount is always applied before tax; tax is computed on the
// post-discount base. Full precision is kept throughout, rounding happens
// only at persist/display boundaries via RoundMoney.
func ComputeLineTotal(quantity, rate, discountPercent, taxPercent decimal.Decimal) LineTotal {
	subtotal := quantity.Mul(rate)
	discountAmount := subtotal.Mul(discountPercent).Div(hundred)
	afterDiscount := subtotal.Sub(discountAmount)
	taxAmount := afterDiscount.Mul(taxPercent).Div(hundred)
	return LineTotal{
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Amount:         afterDiscount.Add(taxAmount),
	}
}

// SplitGST halves a total GST rate into its SGST and CGST components, each
// rounded to two decimals.
func SplitGST(totalRate decimal.Decimal) (sgst, cgst decimal.Decimal) {
	half := totalRate.Div(decimal.NewFromInt(2)).Round(2)
	return half, half
}

// ClassifyTaxType decides GST applicability from the two GSTINs. Non-GST when
// either is absent or shorter than the two-character state prefix; GST
// otherwise, whether or not the state codes match: matching codes mean
// intra-state (CGST+SGST), differing codes inter-state (IGST), but both are
// GST-applicable.
func ClassifyTaxType(partyGSTIN, companyGSTIN string) string {
	p := strings.TrimSpace(partyGSTIN)
	c := strings.TrimSpace(companyGSTIN)
	if len(p) < 2 || len(c) < 2 {
		return TaxTypeNonGST
	}
	return TaxTypeGST
}

// IsInterState reports whether the two GSTINs belong to different states.
// Only meaningful when ClassifyTaxType returned GST.
func IsInterState(partyGSTIN, companyGSTIN string) bool {
	p := strings.TrimSpace(partyGSTIN)
	c := strings.TrimSpace(companyGSTIN)
	if len(p) < 2 || len(c) < 2 {
		return false
	}
	return p[:2] != c[:2]
}

// BreakdownFor maps the two GSTINs onto the tax attribution for an invoice.
func BreakdownFor(partyGSTIN, companyGSTIN string) Breakdown {
	if ClassifyTaxType(partyGSTIN, companyGSTIN) == TaxTypeNonGST {
		return BreakdownNonGST
	}
	if IsInterState(partyGSTIN, companyGSTIN) {
		return BreakdownInterState
	}
	return BreakdownIntraState
}

// Totals are the invoice-header aggregates over all lines.
type Totals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	GrandTotal    decimal.Decimal
}

// AggregateInvoiceTotals sums the line fields and attributes the tax per the
// breakdown: intra-state splits CGST/SGST equally, inter-state routes it all
// to IGST, Non-GST leaves all three zero.
// GrandTotal = Subtotal - TotalDiscount + TotalTax.
func AggregateInvoiceTotals(items []entity.InvoiceItem, breakdown Breakdown) Totals {
	var t Totals
	for _, item := range items {
		t.Subtotal = t.Subtotal.Add(item.Quantity.Mul(item.Rate))
		t.TotalDiscount = t.TotalDiscount.Add(item.DiscountAmount)
		t.TotalTax = t.TotalTax.Add(item.TaxAmount)
	}
	switch breakdown {
	case BreakdownIntraState:
		half := t.TotalTax.Div(decimal.NewFromInt(2))
		t.CGST = half
		t.SGST = half
	case BreakdownInterState:
		t.IGST = t.TotalTax
	}
	t.GrandTotal = t.Subtotal.Sub(t.TotalDiscount).Add(t.TotalTax)
	return t
}

// RoundMoney applies the boundary rounding policy: two decimal places,
// half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundOffToRupee returns the grand total rounded to the nearest whole rupee
// and the signed adjustment applied, for invoices printed with a round-off
// line.
func RoundOffToRupee(grandTotal decimal.Decimal) (rounded, roundOff decimal.Decimal) {
	rounded = grandTotal.Round(0)
	return rounded, rounded.Sub(grandTotal)
}
