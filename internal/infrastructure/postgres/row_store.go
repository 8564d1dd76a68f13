package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
)

var _ repository.RowStore = (*RowStore)(nil)

// Querier lo implementan *pgxpool.Pool, *pgx.Conn y pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RowStore implementación del puerto RowStore sobre PostgreSQL con SQL dinámico.
// Tablas y columnas se citan con pgx.Identifier; los valores siempre van como parámetros.
type RowStore struct {
	db Querier
}

// NewRowStore construye el adaptador.
func NewRowStore(db Querier) *RowStore {
	return &RowStore{db: db}
}

// Select ejecuta SELECT * con filtros de igualdad.
func (s *RowStore) Select(ctx context.Context, table string, q repository.Query) ([]schema.Row, error) {
	sql, args := buildSelect(table, q)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("select", table, err)
	}
	out, err := collectRows(rows)
	if err != nil {
		return nil, mapError("select", table, err)
	}
	return out, nil
}

// Insert inserta la fila y devuelve la fila almacenada (RETURNING *).
func (s *RowStore) Insert(ctx context.Context, table string, row schema.Row) (schema.Row, error) {
	if row.IsEmpty() {
		return nil, fmt.Errorf("insert %s: fila vacía", table)
	}
	sql, args := buildInsert(table, row)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("insert", table, err)
	}
	out, err := collectRows(rows)
	if err != nil {
		return nil, mapError("insert", table, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("insert %s: sin fila devuelta", table)
	}
	return out[0], nil
}

// Update aplica patch a las filas que cumplen los filtros.
func (s *RowStore) Update(ctx context.Context, table string, filters []repository.Filter, patch schema.Row) (int64, error) {
	if patch.IsEmpty() {
		return 0, nil
	}
	if len(filters) == 0 {
		return 0, fmt.Errorf("update %s: se requiere al menos un filtro", table)
	}
	sql, args := buildUpdate(table, filters, patch)
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapError("update", table, err)
	}
	return tag.RowsAffected(), nil
}

// Delete borra las filas que cumplen los filtros. Sin filtros se rechaza.
func (s *RowStore) Delete(ctx context.Context, table string, filters []repository.Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, fmt.Errorf("delete %s: se requiere al menos un filtro", table)
	}
	sql, args := buildDelete(table, filters)
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapError("delete", table, err)
	}
	return tag.RowsAffected(), nil
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func buildWhere(filters []repository.Filter, args []any) (string, []any) {
	if len(filters) == 0 {
		return "", args
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		args = append(args, f.Value)
		parts = append(parts, fmt.Sprintf("%s = $%d", quote(f.Column), len(args)))
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func buildSelect(table string, q repository.Query) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(quote(table))
	where, args := buildWhere(q.Filters, nil)
	b.WriteString(where)
	if q.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(quote(q.OrderBy))
		if q.Desc {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	return b.String(), args
}

func sortedColumns(row schema.Row) []string {
	cols := make([]string, 0, len(row))
	for c := range row {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func buildInsert(table string, row schema.Row) (string, []any) {
	cols := sortedColumns(row)
	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
		params[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[c]
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		quote(table), strings.Join(quoted, ", "), strings.Join(params, ", "))
	return sql, args
}

func buildUpdate(table string, filters []repository.Filter, patch schema.Row) (string, []any) {
	cols := sortedColumns(patch)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(filters))
	for i, c := range cols {
		args = append(args, patch[c])
		sets[i] = fmt.Sprintf("%s = $%d", quote(c), len(args))
	}
	where, args := buildWhere(filters, args)
	return fmt.Sprintf("UPDATE %s SET %s%s", quote(table), strings.Join(sets, ", "), where), args
}

func buildDelete(table string, filters []repository.Filter) (string, []any) {
	where, args := buildWhere(filters, nil)
	return fmt.Sprintf("DELETE FROM %s%s", quote(table), where), args
}

// collectRows convierte el resultado en filas schema.Row (nombre de columna → valor decodificado).
func collectRows(rows pgx.Rows) ([]schema.Row, error) {
	defer rows.Close()
	fields := rows.FieldDescriptions()
	var out []schema.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		r := make(schema.Row, len(fields))
		for i, fd := range fields {
			r[fd.Name] = values[i]
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
