// Package pdf renders the printable GST tax invoice.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company name + GSTIN  │  Invoice no + Date          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: party name, GSTIN, address                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: # | Item | HSN | Qty | Rate | Disc | GST% | Amount   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HSN SUMMARY  │  TOTALS: Subtotal / Tax split / Grand Total  │
//	│  Amount in words + declaration                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/application/billing"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/gst"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
	"github.com/gstdesk/gstdesk-api/pkg/inr"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implements billing.InvoicePDFGenerator using Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate renders the invoice and returns the PDF bytes.
func (g *MarotoPDFGenerator) Generate(company *entity.Company, full *repository.InvoiceWithItems) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice "+full.Invoice.InvoiceNo, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(&full.Invoice, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(&full.Party))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(full.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(&full.Invoice))

	if full.Invoice.TaxType == gst.TaxTypeGST {
		m.AddRows(line.NewRow(2))
		for _, r := range hsnSummaryRows(full) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(footerRows(&full.Invoice)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: company name + GSTIN (left), invoice number + date (right).
func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	title := "TAX INVOICE"
	if invoice.TaxType != gst.TaxTypeGST {
		title = "INVOICE"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("GSTIN: "+nonEmpty(company.GSTIN, "Unregistered"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+invoice.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// billToRow: buyer details.
func billToRow(party *entity.Party) core.Row {
	address := party.Address
	if party.City != "" {
		address = nonEmpty(address+", "+party.City, party.City)
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(party.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("GSTIN: %s   |   %s   |   %s",
				nonEmpty(party.GSTNumber, "Unregistered"),
				nonEmpty(address, "-"),
				nonEmpty(party.Mobile, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: the item table header.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Item", 3, align.Left),
		h("HSN", 1, align.Center),
		h("Qty", 1, align.Right),
		h("Rate", 2, align.Right),
		h("Disc", 1, align.Right),
		h("GST%", 1, align.Center),
		h("Amount", 2, align.Right),
	)
}

// tableItemRows: one row per invoice line, in line order.
func tableItemRows(items []entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.LineNo),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				nonEmpty(it.HSNCode, "-"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.Quantity.String()+" "+it.Unit,
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(2).Add(text.New(
				inr.Format(it.Rate),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.DiscountPercent.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.TaxPercent.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				inr.Format(it.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: right-aligned totals block with the applicable tax split.
func totalsRow(invoice *entity.Invoice) core.Row {
	type entry struct {
		label string
		value decimal.Decimal
	}
	entries := []entry{
		{"Subtotal:", invoice.Subtotal},
	}
	if !invoice.TotalDiscount.IsZero() {
		entries = append(entries, entry{"Discount:", invoice.TotalDiscount.Neg()})
	}
	if !invoice.IGST.IsZero() {
		entries = append(entries, entry{"IGST:", invoice.IGST})
	} else if !invoice.TotalTax.IsZero() {
		entries = append(entries,
			entry{"CGST:", invoice.CGST},
			entry{"SGST:", invoice.SGST},
		)
	}
	if !invoice.RoundOff.IsZero() {
		entries = append(entries, entry{"Round Off:", invoice.RoundOff})
	}

	labels := make([]core.Component, 0, len(entries)+1)
	values := make([]core.Component, 0, len(entries)+1)
	top := 1.0
	for _, e := range entries {
		labels = append(labels, text.New(e.label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		values = append(values, text.New(inr.FormatRupees(e.value), props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
		top += 5
	}
	labels = append(labels, text.New("GRAND TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2, Top: top,
	}))
	values = append(values, text.New(inr.FormatRupees(invoice.GrandTotal), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1, Top: top,
	}))

	height := top + 8
	return row.New(height).Add(
		col.New(5),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
	)
}

// hsnSummaryRows: the per-HSN tax table GST invoices carry.
func hsnSummaryRows(full *repository.InvoiceWithItems) []core.Row {
	breakdown := gst.BreakdownIntraState
	if !full.Invoice.IGST.IsZero() {
		breakdown = gst.BreakdownInterState
	}
	summary := gst.HSNSummary(full.Items, breakdown)
	if len(summary) == 0 {
		return nil
	}

	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("TAX SUMMARY", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
		row.New(6).Add(
			h("HSN", 2, align.Left),
			h("Taxable Value", 3, align.Right),
			h("Rate", 1, align.Center),
			h("CGST", 2, align.Right),
			h("SGST", 2, align.Right),
			h("IGST", 2, align.Right),
		),
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1}))
	}
	for _, l := range summary {
		rows = append(rows, row.New(5).Add(
			cell(l.HSNCode, 2, align.Left),
			cell(inr.Format(l.TaxableValue), 3, align.Right),
			cell(l.TaxRate.StringFixed(0)+"%", 1, align.Center),
			cell(inr.Format(l.CGSTAmount), 2, align.Right),
			cell(inr.Format(l.SGSTAmount), 2, align.Right),
			cell(inr.Format(l.IGSTAmount), 2, align.Right),
		))
	}
	return rows
}

// footerRows: amount in words plus the declaration line.
func footerRows(invoice *entity.Invoice) []core.Row {
	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("Amount in words: "+inr.Words(invoice.GrandTotal), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Certified that the particulars given above are true and correct. "+
					"This is a computer generated invoice.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
