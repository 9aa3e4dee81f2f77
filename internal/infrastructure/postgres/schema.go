package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/gstdesk/gstdesk-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded versioned migrations. Every statement is
// additive (CREATE/ALTER ADD with IF NOT EXISTS guards), so re-running
// against any prior schema version converges without data loss.
func Migrate(dsn string, log *logger.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	log.Info().Int64("schema_version", version).Msg("database schema up to date")
	return nil
}

// columnSpec is one column the running binary expects to exist.
type columnSpec struct {
	table  string
	column string
	ddl    string
}

// expectedColumns lists columns added after the initial release. Databases
// created by older binaries may lack them even when the goose version table
// says otherwise (desktop installs were once migrated by hand).
var expectedColumns = []columnSpec{
	{"parties", "pan", "TEXT"},
	{"parties", "pincode", "TEXT"},
	{"parties", "balance_type", "TEXT NOT NULL DEFAULT 'dr'"},
	{"parties", "credit_limit", "NUMERIC(14,2) NOT NULL DEFAULT 0"},
	{"parties", "credit_days", "INTEGER NOT NULL DEFAULT 0"},
	{"products", "current_stock", "NUMERIC(14,3) NOT NULL DEFAULT 0"},
	{"products", "low_stock_threshold", "NUMERIC(14,3) NOT NULL DEFAULT 5"},
	{"products", "barcode", "TEXT"},
	{"products", "mrp", "NUMERIC(14,2) NOT NULL DEFAULT 0"},
	{"products", "discount_percent", "NUMERIC(6,2) NOT NULL DEFAULT 0"},
	{"products", "track_stock", "BOOLEAN NOT NULL DEFAULT TRUE"},
	{"products", "is_gst_registered", "BOOLEAN NOT NULL DEFAULT TRUE"},
	{"invoices", "cgst", "NUMERIC(14,2) NOT NULL DEFAULT 0"},
	{"invoices", "sgst", "NUMERIC(14,2) NOT NULL DEFAULT 0"},
	{"invoices", "igst", "NUMERIC(14,2) NOT NULL DEFAULT 0"},
	{"invoices", "round_off", "NUMERIC(14,2) NOT NULL DEFAULT 0"},
	{"invoices", "bill_type", "TEXT NOT NULL DEFAULT 'Credit'"},
	{"invoices", "notes", "TEXT"},
	{"invoice_items", "cgst_amount", "NUMERIC(14,2) NOT NULL DEFAULT 0"},
	{"invoice_items", "sgst_amount", "NUMERIC(14,2) NOT NULL DEFAULT 0"},
	{"invoice_items", "igst_amount", "NUMERIC(14,2) NOT NULL DEFAULT 0"},
	{"payments", "payment_type", "TEXT NOT NULL DEFAULT 'Receipt'"},
	{"payments", "reference_no", "TEXT"},
}

// EnsureColumns issues a plain ADD COLUMN for every expected column and
// swallows duplicate-column errors. A failure on one column is logged and
// does not stop the pass.
func EnsureColumns(ctx context.Context, q Querier, log *logger.Logger) {
	for _, c := range expectedColumns {
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.column, c.ddl)
		if _, err := q.Exec(ctx, stmt); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			log.Warn().Err(err).
				Str("table", c.table).
				Str("column", c.column).
				Msg("column check failed")
			continue
		}
		log.Info().Str("table", c.table).Str("column", c.column).Msg("added missing column")
	}
}
