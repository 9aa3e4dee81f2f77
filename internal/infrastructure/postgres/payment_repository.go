package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository (usable with pool or tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter. Pass pool or tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

var paymentCols = []string{
	"id", "payment_id", "company_id", "party_id", "invoice_id", "amount", "date",
	"mode", "payment_type", "reference_no", "notes", "created_at", "updated_at",
}

var paymentColumns = strings.Join(paymentCols, ", ")

// Create persists a payment or receipt.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.PaymentID, payment.CompanyID, payment.PartyID,
		nullIfEmpty(payment.InvoiceID), payment.Amount, payment.Date, payment.Mode,
		payment.Type, nullIfEmpty(payment.RefNo), nullIfEmpty(payment.Notes),
		payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches a payment by ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// ListByCompany lists payments, optionally filtered by type, newest first.
func (r *PaymentRepo) ListByCompany(companyID, typeFilter string) ([]*entity.Payment, error) {
	b := sq.Select(paymentCols...).
		From("payments").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("date DESC", "payment_id DESC").
		PlaceholderFormat(sq.Dollar)
	if typeFilter != "" {
		b = b.Where(sq.Eq{"payment_type": typeFilter})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build payment list query: %w", err)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

// ListByInvoice lists payments applied against one invoice, oldest first.
func (r *PaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY date, payment_id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments by invoice: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

// Update rewrites a payment.
func (r *PaymentRepo) Update(payment *entity.Payment) error {
	query := `
		UPDATE payments SET party_id = $2, invoice_id = $3, amount = $4, date = $5,
			mode = $6, payment_type = $7, reference_no = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.PartyID, nullIfEmpty(payment.InvoiceID), payment.Amount,
		payment.Date, payment.Mode, payment.Type, nullIfEmpty(payment.RefNo),
		nullIfEmpty(payment.Notes), payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete removes a payment by ID.
func (r *PaymentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// SumByParty totals payment amounts for a party, optionally filtered by type.
func (r *PaymentRepo) SumByParty(partyID, typeFilter string) (decimal.Decimal, error) {
	b := sq.Select("COALESCE(SUM(amount), 0)").
		From("payments").
		Where(sq.Eq{"party_id": partyID}).
		PlaceholderFormat(sq.Dollar)
	if typeFilter != "" {
		b = b.Where(sq.Eq{"payment_type": typeFilter})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build payment sum query: %w", err)
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments by party: %w", err)
	}
	return total, nil
}

// SumForInvoice totals payments applied against one invoice.
func (r *PaymentRepo) SumForInvoice(invoiceID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`
	if err := r.q.QueryRow(context.Background(), query, invoiceID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments for invoice: %w", err)
	}
	return total, nil
}

// CountByParty counts payments recorded for the party.
func (r *PaymentRepo) CountByParty(partyID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM payments WHERE party_id = $1`
	if err := r.q.QueryRow(context.Background(), query, partyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count payments by party: %w", err)
	}
	return n, nil
}

// LastPaymentID returns the highest payment_id with the given prefix,
// "" when none.
func (r *PaymentRepo) LastPaymentID(companyID, prefix string) (string, error) {
	var last *string
	query := `SELECT MAX(payment_id) FROM payments WHERE company_id = $1 AND payment_id LIKE $2 || '%'`
	if err := r.q.QueryRow(context.Background(), query, companyID, prefix).Scan(&last); err != nil {
		return "", fmt.Errorf("last payment id: %w", err)
	}
	return derefStr(last), nil
}

func collectPayments(rows pgx.Rows) ([]*entity.Payment, error) {
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var invoiceID, refNo, notes *string
	err := row.Scan(
		&p.ID, &p.PaymentID, &p.CompanyID, &p.PartyID, &invoiceID, &p.Amount,
		&p.Date, &p.Mode, &p.Type, &refNo, &notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.InvoiceID = derefStr(invoiceID)
	p.RefNo = derefStr(refNo)
	p.Notes = derefStr(notes)
	return &p, nil
}
