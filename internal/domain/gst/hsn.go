package gst

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
)

// HSNLine is one row of the HSN-wise tax summary printed on an invoice:
// lines grouped by HSN code and tax rate.
type HSNLine struct {
	HSNCode      string
	TaxRate      decimal.Decimal
	TaxableValue decimal.Decimal
	CGSTAmount   decimal.Decimal
	SGSTAmount   decimal.Decimal
	IGSTAmount   decimal.Decimal
	TotalTax     decimal.Decimal
}

// HSNSummary groups line items by (HSN code, tax rate) and attributes the tax
// per the breakdown. Lines without an HSN code fall under "N/A". Rows come
// back sorted by HSN code then rate, amounts rounded at this display boundary.
func HSNSummary(items []entity.InvoiceItem, breakdown Breakdown) []HSNLine {
	type key struct {
		hsn  string
		rate string
	}
	groups := make(map[key]*HSNLine)
	two := decimal.NewFromInt(2)

	for _, item := range items {
		hsn := item.HSNCode
		if hsn == "" {
			hsn = "N/A"
		}
		k := key{hsn: hsn, rate: item.TaxPercent.String()}
		line, ok := groups[k]
		if !ok {
			line = &HSNLine{HSNCode: hsn, TaxRate: item.TaxPercent}
			groups[k] = line
		}
		taxable := item.Amount.Sub(item.TaxAmount)
		line.TaxableValue = line.TaxableValue.Add(taxable)
		line.TotalTax = line.TotalTax.Add(item.TaxAmount)
		switch breakdown {
		case BreakdownInterState:
			line.IGSTAmount = line.IGSTAmount.Add(item.TaxAmount)
		case BreakdownIntraState:
			line.CGSTAmount = line.CGSTAmount.Add(item.TaxAmount.Div(two))
			line.SGSTAmount = line.SGSTAmount.Add(item.TaxAmount.Div(two))
		}
	}

	result := make([]HSNLine, 0, len(groups))
	for _, line := range groups {
		result = append(result, HSNLine{
			HSNCode:      line.HSNCode,
			TaxRate:      line.TaxRate,
			TaxableValue: RoundMoney(line.TaxableValue),
			CGSTAmount:   RoundMoney(line.CGSTAmount),
			SGSTAmount:   RoundMoney(line.SGSTAmount),
			IGSTAmount:   RoundMoney(line.IGSTAmount),
			TotalTax:     RoundMoney(line.TotalTax),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].HSNCode != result[j].HSNCode {
			return result[i].HSNCode < result[j].HSNCode
		}
		return result[i].TaxRate.LessThan(result[j].TaxRate)
	})
	return result
}
