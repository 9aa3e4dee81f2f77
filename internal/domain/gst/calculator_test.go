package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/gst"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Reference line: 2 × 100 with 10% discount and 18% GST.
// subtotal=200, discount=20, after discount=180, tax=32.40, amount=212.40.
func TestComputeLineTotal_ReferenceVector(t *testing.T) {
	lt := gst.ComputeLineTotal(d("2"), d("100"), d("10"), d("18"))

	assert.True(t, lt.DiscountAmount.Equal(d("20")), "discount: %s", lt.DiscountAmount)
	assert.True(t, lt.TaxAmount.Equal(d("32.4")), "tax: %s", lt.TaxAmount)
	assert.True(t, lt.Amount.Equal(d("212.4")), "amount: %s", lt.Amount)
}

func TestComputeLineTotal_DiscountAppliedBeforeTax(t *testing.T) {
	// Tax on the discounted base, not the gross: 100 @ 50% discount, 10% tax
	// must yield 55, not 60 - 50 = 10% of 100 applied first.
	lt := gst.ComputeLineTotal(d("1"), d("100"), d("50"), d("10"))
	assert.True(t, lt.Amount.Equal(d("55")), "amount: %s", lt.Amount)
}

func TestComputeLineTotal_Formula(t *testing.T) {
	cases := []struct {
		name              string
		qty, rate, dp, tp string
	}{
		{"no discount no tax", "3", "49.99", "0", "0"},
		{"full discount", "2", "100", "100", "18"},
		{"zero rate", "5", "0", "10", "18"},
		{"fractional quantity", "1.5", "33.33", "7.5", "12"},
		{"28 percent slab", "10", "999", "2.5", "28"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qty, rate, dp, tp := d(tc.qty), d(tc.rate), d(tc.dp), d(tc.tp)
			lt := gst.ComputeLineTotal(qty, rate, dp, tp)

			hundred := d("100")
			expected := qty.Mul(rate).
				Mul(hundred.Sub(dp)).Div(hundred).
				Mul(hundred.Add(tp)).Div(hundred)
			diff := lt.Amount.Sub(expected).Abs()
			assert.True(t, diff.LessThanOrEqual(d("0.01")),
				"amount %s deviates from q*r*(1-d/100)*(1+t/100)=%s", lt.Amount, expected)
		})
	}
}

func TestSplitGST(t *testing.T) {
	for _, rate := range []string{"0", "5", "12", "18", "28", "0.25", "3"} {
		sgst, cgst := gst.SplitGST(d(rate))
		assert.True(t, sgst.Equal(cgst), "rate %s: halves differ", rate)
		sum := sgst.Add(cgst)
		diff := sum.Sub(d(rate)).Abs()
		assert.True(t, diff.LessThanOrEqual(d("0.01")),
			"rate %s: sgst+cgst=%s", rate, sum)
	}
}

func TestSplitGST_EighteenPercent(t *testing.T) {
	sgst, cgst := gst.SplitGST(d("18"))
	assert.True(t, sgst.Equal(d("9")))
	assert.True(t, cgst.Equal(d("9")))
}

func TestClassifyTaxType(t *testing.T) {
	const gujarat = "24AADPF6173E1ZT"
	const maharashtra = "27AABCU9603R1Z0"

	cases := []struct {
		name           string
		party, company string
		want           string
	}{
		{"both present different states", gujarat, maharashtra, gst.TaxTypeGST},
		{"both present same state", gujarat, "24AABCU9603R1Z0", gst.TaxTypeGST},
		{"party missing", "", maharashtra, gst.TaxTypeNonGST},
		{"company missing", gujarat, "", gst.TaxTypeNonGST},
		{"party too short", "2", maharashtra, gst.TaxTypeNonGST},
		{"whitespace only", "   ", maharashtra, gst.TaxTypeNonGST},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, gst.ClassifyTaxType(tc.party, tc.company))
		})
	}
}

func TestIsInterState(t *testing.T) {
	assert.True(t, gst.IsInterState("24AADPF6173E1ZT", "27AABCU9603R1Z0"))
	assert.False(t, gst.IsInterState("24AADPF6173E1ZT", "24AABCU9603R1Z0"))
	assert.False(t, gst.IsInterState("", "27AABCU9603R1Z0"))
}

func TestBreakdownFor(t *testing.T) {
	assert.Equal(t, gst.BreakdownInterState, gst.BreakdownFor("24AADPF6173E1ZT", "27AABCU9603R1Z0"))
	assert.Equal(t, gst.BreakdownIntraState, gst.BreakdownFor("24AADPF6173E1ZT", "24AABCU9603R1Z0"))
	assert.Equal(t, gst.BreakdownNonGST, gst.BreakdownFor("", "27AABCU9603R1Z0"))
}

func makeItem(qty, rate, dp, tp string) entity.InvoiceItem {
	q, r, dpc, tpc := d(qty), d(rate), d(dp), d(tp)
	lt := gst.ComputeLineTotal(q, r, dpc, tpc)
	return entity.InvoiceItem{
		Quantity:        q,
		Rate:            r,
		DiscountPercent: dpc,
		DiscountAmount:  lt.DiscountAmount,
		TaxPercent:      tpc,
		TaxAmount:       lt.TaxAmount,
		Amount:          lt.Amount,
	}
}

func TestAggregateInvoiceTotals_IntraState(t *testing.T) {
	items := []entity.InvoiceItem{
		makeItem("2", "100", "10", "18"), // 212.40, tax 32.40
		makeItem("1", "500", "0", "18"),  // 590.00, tax 90.00
	}
	totals := gst.AggregateInvoiceTotals(items, gst.BreakdownIntraState)

	assert.True(t, totals.Subtotal.Equal(d("700")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.TotalDiscount.Equal(d("20")), "discount: %s", totals.TotalDiscount)
	assert.True(t, totals.TotalTax.Equal(d("122.4")), "tax: %s", totals.TotalTax)
	assert.True(t, totals.CGST.Equal(d("61.2")), "cgst: %s", totals.CGST)
	assert.True(t, totals.SGST.Equal(d("61.2")), "sgst: %s", totals.SGST)
	assert.True(t, totals.IGST.IsZero(), "igst: %s", totals.IGST)
	assert.True(t, totals.GrandTotal.Equal(d("802.4")), "grand: %s", totals.GrandTotal)
}

func TestAggregateInvoiceTotals_InterState(t *testing.T) {
	items := []entity.InvoiceItem{makeItem("2", "100", "10", "18")}
	totals := gst.AggregateInvoiceTotals(items, gst.BreakdownInterState)

	assert.True(t, totals.CGST.IsZero())
	assert.True(t, totals.SGST.IsZero())
	assert.True(t, totals.IGST.Equal(d("32.4")), "igst: %s", totals.IGST)
	assert.True(t, totals.GrandTotal.Equal(d("212.4")))
}

func TestAggregateInvoiceTotals_NonGST(t *testing.T) {
	items := []entity.InvoiceItem{makeItem("2", "100", "10", "0")}
	totals := gst.AggregateInvoiceTotals(items, gst.BreakdownNonGST)

	assert.True(t, totals.TotalTax.IsZero())
	assert.True(t, totals.CGST.IsZero())
	assert.True(t, totals.SGST.IsZero())
	assert.True(t, totals.IGST.IsZero())
	assert.True(t, totals.GrandTotal.Equal(d("180")))
}

// Rounding must not compound across many lines: 100 lines of 0.333 each keep
// full precision until the single boundary rounding.
func TestAggregateInvoiceTotals_NoIntermediateRounding(t *testing.T) {
	var items []entity.InvoiceItem
	for i := 0; i < 100; i++ {
		items = append(items, makeItem("1", "0.333", "0", "18"))
	}
	totals := gst.AggregateInvoiceTotals(items, gst.BreakdownIntraState)

	// 100 * 0.333 * 1.18 = 39.294 exactly at full precision.
	assert.True(t, totals.GrandTotal.Equal(d("39.294")), "grand: %s", totals.GrandTotal)
	assert.True(t, gst.RoundMoney(totals.GrandTotal).Equal(d("39.29")))
}

func TestRoundOffToRupee(t *testing.T) {
	rounded, off := gst.RoundOffToRupee(d("802.4"))
	assert.True(t, rounded.Equal(d("802")))
	assert.True(t, off.Equal(d("-0.4")))

	rounded, off = gst.RoundOffToRupee(d("802.5"))
	assert.True(t, rounded.Equal(d("803")))
	assert.True(t, off.Equal(d("0.5")))
}

func TestHSNSummary(t *testing.T) {
	a := makeItem("2", "100", "10", "18")
	a.HSNCode = "8471"
	b := makeItem("1", "500", "0", "18")
	b.HSNCode = "8471"
	c := makeItem("1", "50", "0", "5")
	// c has no HSN code on purpose

	summary := gst.HSNSummary([]entity.InvoiceItem{a, b, c}, gst.BreakdownIntraState)
	require.Len(t, summary, 2)

	// Sorted by HSN code: "8471" before "N/A".
	assert.Equal(t, "8471", summary[0].HSNCode)
	assert.True(t, summary[0].TaxableValue.Equal(d("680")), "taxable: %s", summary[0].TaxableValue)
	assert.True(t, summary[0].TotalTax.Equal(d("122.4")))
	assert.True(t, summary[0].CGSTAmount.Equal(d("61.2")))
	assert.True(t, summary[0].SGSTAmount.Equal(d("61.2")))
	assert.True(t, summary[0].IGSTAmount.IsZero())

	assert.Equal(t, "N/A", summary[1].HSNCode)
	assert.True(t, summary[1].TaxableValue.Equal(d("50")))
	assert.True(t, summary[1].TotalTax.Equal(d("2.5")))
}

func TestStateFromGSTIN(t *testing.T) {
	assert.Equal(t, "Gujarat", gst.StateFromGSTIN("24AADPF6173E1ZT"))
	assert.Equal(t, "Maharashtra", gst.StateFromGSTIN("27AABCU9603R1Z0"))
	assert.Equal(t, "", gst.StateFromGSTIN("9"))
	assert.Equal(t, "", gst.StateFromGSTIN("99AADPF6173E1ZT"))
}
