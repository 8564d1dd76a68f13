package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation = "23505"
	codeUndefinedColumn = "42703"
	codeUndefinedTable  = "42P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapError traduce errores de PostgreSQL a errores de dominio.
// Columna inexistente -> domain.ErrUndefinedColumn (los llamadores degradan).
func mapError(op, table string, err error) error {
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case codeUndefinedColumn:
		return fmt.Errorf("%s %s: %w: %v", op, table, domain.ErrUndefinedColumn, err)
	case codeUniqueViolation:
		return fmt.Errorf("%s %s: %w: %v", op, table, domain.ErrConflict, err)
	case codeUndefinedTable:
		return fmt.Errorf("%s %s: tabla inexistente: %w", op, table, err)
	}
	return fmt.Errorf("%s %s: %w", op, table, err)
}
