package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

var invoiceCols = []string{
	"id", "company_id", "invoice_no", "date", "party_id", "tax_type", "bill_type",
	"subtotal", "total_discount", "total_tax", "cgst", "sgst", "igst", "round_off",
	"grand_total", "paid_amount", "balance_due", "status", "notes",
	"created_at", "updated_at",
}

var invoiceColumns = strings.Join(invoiceCols, ", ")

// Create persists an invoice header. Items are inserted separately inside
// the same transaction.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.InvoiceNo, invoice.Date, invoice.PartyID,
		invoice.TaxType, invoice.BillType, invoice.Subtotal, invoice.TotalDiscount,
		invoice.TotalTax, invoice.CGST, invoice.SGST, invoice.IGST, invoice.RoundOff,
		invoice.GrandTotal, invoice.PaidAmount, invoice.BalanceDue, invoice.Status,
		nullIfEmpty(invoice.Notes), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persists one invoice line.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, line_no, product_id, product_name,
			hsn_code, quantity, unit, rate, discount_percent, discount_amount,
			tax_percent, tax_amount, cgst_amount, sgst_amount, igst_amount, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.LineNo, nullIfEmpty(item.ProductID), item.ProductName,
		nullIfEmpty(item.HSNCode), item.Quantity, item.Unit, item.Rate,
		item.DiscountPercent, item.DiscountAmount, item.TaxPercent, item.TaxAmount,
		item.CGSTAmount, item.SGSTAmount, item.IGSTAmount, item.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID fetches an invoice header by ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByNumber fetches an invoice header by its number within the company.
func (r *InvoiceRepo) GetByNumber(companyID, invoiceNo string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND invoice_no = $2`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, companyID, invoiceNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by number: %w", err)
	}
	return inv, nil
}

// GetItems returns the invoice's lines ordered by line number.
func (r *InvoiceRepo) GetItems(invoiceID string) ([]entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, line_no, product_id, product_name, hsn_code, quantity,
			unit, rate, discount_percent, discount_amount, tax_percent, tax_amount,
			cgst_amount, sgst_amount, igst_amount, amount
		FROM invoice_items WHERE invoice_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		var productID, hsn *string
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.LineNo, &productID, &it.ProductName, &hsn,
			&it.Quantity, &it.Unit, &it.Rate, &it.DiscountPercent, &it.DiscountAmount,
			&it.TaxPercent, &it.TaxAmount, &it.CGSTAmount, &it.SGSTAmount,
			&it.IGSTAmount, &it.Amount,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		it.ProductID = derefStr(productID)
		it.HSNCode = derefStr(hsn)
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update rewrites an invoice header.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET invoice_no = $2, date = $3, party_id = $4, tax_type = $5,
			bill_type = $6, subtotal = $7, total_discount = $8, total_tax = $9,
			cgst = $10, sgst = $11, igst = $12, round_off = $13, grand_total = $14,
			paid_amount = $15, balance_due = $16, status = $17, notes = $18,
			updated_at = $19
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.InvoiceNo, invoice.Date, invoice.PartyID, invoice.TaxType,
		invoice.BillType, invoice.Subtotal, invoice.TotalDiscount, invoice.TotalTax,
		invoice.CGST, invoice.SGST, invoice.IGST, invoice.RoundOff, invoice.GrandTotal,
		invoice.PaidAmount, invoice.BalanceDue, invoice.Status,
		nullIfEmpty(invoice.Notes), invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// DeleteItems removes every line of the invoice (full-replace updates).
func (r *InvoiceRepo) DeleteItems(invoiceID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// Delete removes the invoice. Items cascade; linked payments keep their row
// with invoice_id set to NULL.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// NumberExists reports whether an invoice number is already taken.
func (r *InvoiceRepo) NumberExists(companyID, invoiceNo string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM invoices WHERE company_id = $1 AND invoice_no = $2)`
	if err := r.q.QueryRow(context.Background(), query, companyID, invoiceNo).Scan(&exists); err != nil {
		return false, fmt.Errorf("check invoice number: %w", err)
	}
	return exists, nil
}

// ListByCompany lists invoice headers, newest first, with optional filters.
func (r *InvoiceRepo) ListByCompany(companyID string, filter repository.InvoiceListFilter) ([]*entity.Invoice, error) {
	b := sq.Select(invoiceCols...).
		From("invoices").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("date DESC", "invoice_no DESC").
		PlaceholderFormat(sq.Dollar)
	if filter.Status != "" {
		b = b.Where(sq.Eq{"status": filter.Status})
	}
	if filter.PartyID != "" {
		b = b.Where(sq.Eq{"party_id": filter.PartyID})
	}
	if !filter.DateFrom.IsZero() {
		b = b.Where(sq.GtOrEq{"date": filter.DateFrom})
	}
	if !filter.DateTo.IsZero() {
		b = b.Where(sq.LtOrEq{"date": filter.DateTo})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build invoice list query: %w", err)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// SumGrandTotalByParty totals all invoice amounts billed to a party.
func (r *InvoiceRepo) SumGrandTotalByParty(partyID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(grand_total), 0) FROM invoices WHERE party_id = $1 AND status <> $2`
	if err := r.q.QueryRow(context.Background(), query, partyID, entity.StatusCancelled).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum invoices by party: %w", err)
	}
	return total, nil
}

// LastInvoiceNumber returns the highest invoice_no with the given prefix,
// "" when none. Numbers share a fixed digit width so MAX sorts correctly.
func (r *InvoiceRepo) LastInvoiceNumber(companyID, prefix string) (string, error) {
	var last *string
	query := `SELECT MAX(invoice_no) FROM invoices WHERE company_id = $1 AND invoice_no LIKE $2 || '%'`
	if err := r.q.QueryRow(context.Background(), query, companyID, prefix).Scan(&last); err != nil {
		return "", fmt.Errorf("last invoice number: %w", err)
	}
	return derefStr(last), nil
}

// CountByParty counts invoices billed to the party.
func (r *InvoiceRepo) CountByParty(partyID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM invoices WHERE party_id = $1`
	if err := r.q.QueryRow(context.Background(), query, partyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices by party: %w", err)
	}
	return n, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var notes *string
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.InvoiceNo, &inv.Date, &inv.PartyID, &inv.TaxType,
		&inv.BillType, &inv.Subtotal, &inv.TotalDiscount, &inv.TotalTax, &inv.CGST,
		&inv.SGST, &inv.IGST, &inv.RoundOff, &inv.GrandTotal, &inv.PaidAmount,
		&inv.BalanceDue, &inv.Status, &notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Notes = derefStr(notes)
	return &inv, nil
}
