package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de error PostgreSQL que el ledger traduce a errores de dominio.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgLockNotAvailable    = "55P03"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation: violación de constraint único.
func isUniqueViolation(err error) bool { return pgErrCode(err) == pgUniqueViolation }

// isForeignKeyViolation: referencia a producto/ubicación/usuario inexistente.
func isForeignKeyViolation(err error) bool { return pgErrCode(err) == pgForeignKeyViolation }

// isLockNotAvailable: lock_timeout vencido esperando la fila de stock.
func isLockNotAvailable(err error) bool { return pgErrCode(err) == pgLockNotAvailable }
