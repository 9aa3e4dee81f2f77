package postgres

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreAdditive(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		data, err := migrationsFS.ReadFile("migrations/" + e.Name())
		require.NoError(t, err)
		sql := strings.ToUpper(string(data))

		assert.NotContains(t, sql, "DROP ", "migration %s must not drop", e.Name())
		assert.NotContains(t, sql, "RENAME", "migration %s must not rename", e.Name())
		for _, line := range strings.Split(sql, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "CREATE TABLE") {
				assert.Contains(t, line, "IF NOT EXISTS", "unguarded create in %s", e.Name())
			}
			if strings.HasPrefix(line, "ALTER TABLE") && strings.Contains(line, "ADD COLUMN") {
				assert.Contains(t, line, "IF NOT EXISTS", "unguarded add column in %s", e.Name())
			}
		}
	}
}

func TestMigrationsOrderedAndVersioned(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.True(t, sort.StringsAreSorted(names))

	seen := map[string]bool{}
	for _, n := range names {
		prefix, _, ok := strings.Cut(n, "_")
		require.True(t, ok, "migration %s missing numeric prefix", n)
		assert.False(t, seen[prefix], "duplicate migration version %s", prefix)
		seen[prefix] = true
	}
}

func TestInvoiceNumberUniquenessIsPerCompany(t *testing.T) {
	data, err := migrationsFS.ReadFile("migrations/00001_init.sql")
	require.NoError(t, err)
	sql := string(data)

	// The number pre-checks query per company, so a global constraint would
	// reject a second tenant reusing another tenant's number.
	assert.NotContains(t, sql, "invoice_no     TEXT NOT NULL UNIQUE")
	assert.Contains(t, sql, "ON invoices (company_id, invoice_no)")
}

func TestExpectedColumnsMatchMigrations(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)

	var all strings.Builder
	for _, e := range entries {
		data, err := migrationsFS.ReadFile("migrations/" + e.Name())
		require.NoError(t, err)
		all.Write(data)
	}
	sql := all.String()

	// Every column the convergence pass knows about must also exist in a
	// versioned migration, so fresh installs never depend on the pass.
	for _, c := range expectedColumns {
		assert.Contains(t, sql, c.column, "column %s.%s missing from migrations", c.table, c.column)
	}
}
