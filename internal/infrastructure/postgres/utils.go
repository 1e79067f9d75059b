package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que indican datos inválidos rechazados por la tabla.
const (
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeStringDataTooLong   = "22001"
	codeCharNotInRepertoire = "22021"
)

// isInvalidData verifica si PostgreSQL rechazó la fila por sus restricciones de columna
// (NOT NULL, CHECK, longitud de VARCHAR o bytes no admitidos como NUL).
func isInvalidData(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeNotNullViolation, codeCheckViolation, codeStringDataTooLong, codeCharNotInRepertoire:
		return true
	}
	return false
}
