package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gstdesk/gstdesk-api/internal/domain"
	"github.com/gstdesk/gstdesk-api/internal/domain/entity"
	"github.com/gstdesk/gstdesk-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo implements PartyRepository (usable with pool or tx).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository builds the adapter. Pass pool or tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

var partyCols = []string{
	"id", "company_id", "name", "phone", "email", "type", "gst_number", "pan",
	"address", "city", "state", "pincode", "opening_balance", "balance_type",
	"credit_limit", "credit_days", "created_at", "updated_at",
}

var partyColumns = strings.Join(partyCols, ", ")

// Create persists a new party. Name is stored trimmed and upper-cased.
func (r *PartyRepo) Create(party *entity.Party) error {
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		party.ID, party.CompanyID, normalizeName(party.Name), party.Mobile, party.Email,
		party.Type, party.GSTNumber, party.PAN, party.Address, party.City, party.State,
		party.Pincode, party.OpeningBalance, party.BalanceType, party.CreditLimit,
		party.CreditDays, party.CreatedAt, party.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// GetByID fetches a party by ID.
func (r *PartyRepo) GetByID(id string) (*entity.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE id = $1`
	p, err := scanParty(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return p, nil
}

// FindByName looks up a party by normalized name within the company,
// skipping excludeID.
func (r *PartyRepo) FindByName(companyID, name, excludeID string) (*entity.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE company_id = $1 AND UPPER(TRIM(name)) = $2 AND id <> $3`
	p, err := scanParty(r.q.QueryRow(context.Background(), query, companyID, normalizeName(name), excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find party by name: %w", err)
	}
	return p, nil
}

// ListByCompany lists parties, optionally filtered by type. A type filter
// also matches parties registered as Both.
func (r *PartyRepo) ListByCompany(companyID, typeFilter string) ([]*entity.Party, error) {
	b := sq.Select(partyCols...).
		From("parties").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("name").
		PlaceholderFormat(sq.Dollar)
	if typeFilter != "" {
		b = b.Where(sq.Or{sq.Eq{"type": typeFilter}, sq.Eq{"type": entity.PartyTypeBoth}})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build party list query: %w", err)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update rewrites a party. Name is normalized like in Create.
func (r *PartyRepo) Update(party *entity.Party) error {
	query := `
		UPDATE parties SET name = $2, phone = $3, email = $4, type = $5, gst_number = $6,
			pan = $7, address = $8, city = $9, state = $10, pincode = $11,
			opening_balance = $12, balance_type = $13, credit_limit = $14,
			credit_days = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		party.ID, normalizeName(party.Name), party.Mobile, party.Email, party.Type,
		party.GSTNumber, party.PAN, party.Address, party.City, party.State, party.Pincode,
		party.OpeningBalance, party.BalanceType, party.CreditLimit, party.CreditDays,
		party.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update party: %w", err)
	}
	return nil
}

// Delete removes a party by ID. Callers check CountReferences first.
func (r *PartyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	return nil
}

// CountReferences reports how many invoices and payments point at the party.
func (r *PartyRepo) CountReferences(partyID string) (invoices, payments int, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM invoices WHERE party_id = $1),
			(SELECT COUNT(*) FROM payments WHERE party_id = $1)`
	if err := r.q.QueryRow(context.Background(), query, partyID).Scan(&invoices, &payments); err != nil {
		return 0, 0, fmt.Errorf("count party references: %w", err)
	}
	return invoices, payments, nil
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func scanParty(row pgx.Row) (*entity.Party, error) {
	var p entity.Party
	var phone, email, gstin, pan, address, city, state, pincode *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &phone, &email, &p.Type, &gstin, &pan,
		&address, &city, &state, &pincode, &p.OpeningBalance, &p.BalanceType,
		&p.CreditLimit, &p.CreditDays, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Mobile = derefStr(phone)
	p.Email = derefStr(email)
	p.GSTNumber = derefStr(gstin)
	p.PAN = derefStr(pan)
	p.Address = derefStr(address)
	p.City = derefStr(city)
	p.State = derefStr(state)
	p.Pincode = derefStr(pincode)
	p.IsGSTRegistered = p.GSTNumber != ""
	return &p, nil
}
