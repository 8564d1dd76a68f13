// Package remote implementa los repositorios de dominio sobre el puerto RowStore.
//
// Es la capa tolerante a la deriva de esquema: prueba columnas alias, reintenta sin
// columnas opcionales cuando el esquema desplegado no las tiene y cae a escaneos
// filtrados en memoria cuando una consulta exacta no es posible.
package remote

import (
	"context"
	"errors"

	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
)

func isUndefinedColumn(err error) bool {
	return errors.Is(err, domain.ErrUndefinedColumn)
}

func byID(id string) []repository.Filter {
	return []repository.Filter{repository.Eq(schema.Column(schema.FieldID), id)}
}

func scoped(id, shopID string) []repository.Filter {
	f := byID(id)
	if shopID != "" {
		f = append(f, repository.Eq(schema.Column(schema.FieldShopID), shopID))
	}
	return f
}

// selectOne devuelve la primera fila que cumple los filtros o nil.
func selectOne(ctx context.Context, store repository.RowStore, table string, filters []repository.Filter) (schema.Row, error) {
	rows, err := store.Select(ctx, table, repository.Query{Filters: filters, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// selectOrdered prueba cada columna de orden candidata; si ninguna existe consulta sin orden.
func selectOrdered(ctx context.Context, store repository.RowStore, table string, filters []repository.Filter, desc bool, orderBy ...string) ([]schema.Row, error) {
	for _, col := range orderBy {
		rows, err := store.Select(ctx, table, repository.Query{Filters: filters, OrderBy: col, Desc: desc})
		if err == nil {
			return rows, nil
		}
		if !isUndefinedColumn(err) {
			return nil, err
		}
	}
	return store.Select(ctx, table, repository.Query{Filters: filters})
}

// insertAttempts inserta la primera variante de fila que el esquema acepte.
// Solo un error de columna inexistente pasa a la siguiente variante.
func insertAttempts(ctx context.Context, store repository.RowStore, table string, attempts ...schema.Row) (schema.Row, error) {
	var lastErr error
	for _, row := range attempts {
		stored, err := store.Insert(ctx, table, row)
		if err == nil {
			return stored, nil
		}
		if !isUndefinedColumn(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// updateAttempts análogo a insertAttempts para actualizaciones.
func updateAttempts(ctx context.Context, store repository.RowStore, table string, filters []repository.Filter, attempts ...schema.Row) (int64, error) {
	var lastErr error
	for _, patch := range attempts {
		if patch.IsEmpty() {
			return 0, nil
		}
		n, err := store.Update(ctx, table, filters, patch)
		if err == nil {
			return n, nil
		}
		if !isUndefinedColumn(err) {
			return 0, err
		}
		lastErr = err
	}
	return 0, lastErr
}

// writeAliases escribe value en cada columna alias que el esquema acepte.
// Devuelve cuántas columnas se escribieron y las filas afectadas por la primera escritura.
func writeAliases(ctx context.Context, store repository.RowStore, table string, filters []repository.Filter, f schema.Field, value any) (int, int64, error) {
	written := 0
	var affected int64
	for _, col := range schema.Columns(f) {
		n, err := store.Update(ctx, table, filters, schema.Row{col: value})
		if err != nil {
			if isUndefinedColumn(err) {
				continue
			}
			return written, affected, err
		}
		if written == 0 {
			affected = n
		}
		written++
	}
	return written, affected, nil
}

func columnsOf(fields ...schema.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, schema.Column(f))
	}
	return out
}
