package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_OrdenLexico(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_schema.sql", names[0])
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestMigrationSchema_TablasRequeridas(t *testing.T) {
	script, err := migrationsFS.ReadFile("migrations/001_schema.sql")
	require.NoError(t, err)
	for _, table := range []string{
		"parts", "products", "bom_lines", "bom_station_usages", "production_plans",
		"inventory_reservations", "scheduled_receipts", "inventory", "inventory_transactions",
	} {
		assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	assert.True(t, strings.Contains(string(script), "ON DELETE CASCADE"))
}

func TestPgErrorHelpers(t *testing.T) {
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(check))
	assert.True(t, isCheckViolation(check))
	assert.False(t, isCheckViolation(errors.New("23514")))
}

func TestLockOrder_OrdenaYQuitaDuplicados(t *testing.T) {
	in := []string{"C-02", "A-01", "C-02", "B-07", "A-01"}
	got := lockOrder(in)

	assert.Equal(t, []string{"A-01", "B-07", "C-02"}, got)
	// El slice del llamador no se toca.
	assert.Equal(t, []string{"C-02", "A-01", "C-02", "B-07", "A-01"}, in)
	// Dos llamadores con las mismas piezas en distinto orden bloquean en el mismo orden.
	assert.Equal(t, lockOrder([]string{"B-07", "A-01"}), lockOrder([]string{"A-01", "B-07"}))
	assert.Empty(t, lockOrder(nil))
}
