package repository

import (
	"context"

	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
)

// Filter condición de igualdad columna = valor.
type Filter struct {
	Column string
	Value  any
}

// Eq construye un filtro de igualdad.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Query consulta sobre una tabla: filtros AND, orden opcional y límite (0 = sin límite).
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// RowStore puerto del almacén remoto de filas (tablas con CRUD básico, sin joins ni transacciones).
// Las columnas inexistentes en el esquema desplegado se reportan con domain.ErrUndefinedColumn
// (envuelto), para que los llamadores puedan degradar.
type RowStore interface {
	Select(ctx context.Context, table string, q Query) ([]schema.Row, error)
	Insert(ctx context.Context, table string, row schema.Row) (schema.Row, error)
	Update(ctx context.Context, table string, filters []Filter, patch schema.Row) (int64, error)
	Delete(ctx context.Context, table string, filters []Filter) (int64, error)
}
