package postgres

import (
	"errors"
	"slices"

	"github.com/jackc/pgx/v5/pgconn"
)

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), p. ej. status fuera del dominio.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514" // check_violation
	}
	return false
}

// lockOrder copia ordenada y sin duplicados de partCodes. Toda escritura sobre varias filas
// de inventory recorre las piezas en este orden para que dos transacciones no se crucen.
func lockOrder(partCodes []string) []string {
	out := slices.Clone(partCodes)
	slices.Sort(out)
	return slices.Compact(out)
}
