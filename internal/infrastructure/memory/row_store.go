// Package memory contiene adaptadores en memoria: almacén de filas, overrides locales,
// sesiones y difusión. Se usan en tests y con STORE_DRIVER=memory; no hay durabilidad
// más allá de la vida del proceso.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/shopspring/decimal"
)

var _ repository.RowStore = (*RowStore)(nil)

// Operaciones registradas en el journal.
const (
	OpSelect = "select"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Call operación ejecutada contra el almacén (journal para aserciones en tests).
type Call struct {
	Op      string
	Table   string
	Filters []repository.Filter
	Row     schema.Row
}

// RowStore almacén de filas en memoria con validación opcional de columnas por tabla.
// Una tabla sin esquema registrado acepta cualquier columna.
type RowStore struct {
	mu       sync.RWMutex
	tables   map[string][]schema.Row
	columns  map[string]map[string]struct{}
	failures map[string][]error
	calls    []Call
}

// NewRowStore construye el almacén. schemas: tabla → columnas permitidas (nil = permisivo).
func NewRowStore(schemas map[string][]string) *RowStore {
	s := &RowStore{
		tables:   make(map[string][]schema.Row),
		columns:  make(map[string]map[string]struct{}),
		failures: make(map[string][]error),
	}
	for table, cols := range schemas {
		set := make(map[string]struct{}, len(cols))
		for _, c := range cols {
			set[c] = struct{}{}
		}
		s.columns[table] = set
	}
	return s
}

// DefaultSchemas columnas de las tablas tal como las crea migrations/0001_dailybooks.sql.
func DefaultSchemas() map[string][]string {
	scoped := []string{"id", "shop_id", "name", "created_at"}
	return map[string][]string{
		schema.TableProfiles: {
			"id", "shop_id", "role", "name", "email", "pin", "password", "password_hash", "phone",
			"hourlyRate", "photo", "active", "is_online", "salesmanNumber", "canEditTransactions",
			"canBulkEdit", "created_at",
		},
		schema.TableShops: {
			"id", "name", "location", "address", "owner_email", "telephone", "phone", "billShowTax", "created_at",
		},
		schema.TableAttendance: {
			"id", "workerId", "workerName", "type", "shop_id", "timestamp", "note",
		},
		schema.TableTransactions: {
			"id", "shop_id", "workerId", "desc", "amount", "type", "category", "isFixedExpense",
			"source", "date", "created_at",
		},
		schema.TableRepairs:    scoped,
		schema.TableCategories: scoped,
		schema.TableInventory:  scoped,
	}
}

// FailNext hace que la próxima operación op sobre table devuelva err.
func (s *RowStore) FailNext(op, table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := op + ":" + table
	s.failures[key] = append(s.failures[key], err)
}

// Seed inserta filas sin validar columnas ni registrar llamadas.
func (s *RowStore) Seed(table string, rows ...schema.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		row := r.Clone()
		if _, ok := row["id"]; !ok {
			row["id"] = uuid.New().String()
		}
		s.tables[table] = append(s.tables[table], row)
	}
}

// Rows copia de las filas actuales de la tabla.
func (s *RowStore) Rows(table string) []schema.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]schema.Row, 0, len(s.tables[table]))
	for _, r := range s.tables[table] {
		out = append(out, r.Clone())
	}
	return out
}

// Calls copia del journal de operaciones.
func (s *RowStore) Calls() []Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Call(nil), s.calls...)
}

// ResetCalls vacía el journal.
func (s *RowStore) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// Select devuelve las filas que cumplen todos los filtros.
func (s *RowStore) Select(ctx context.Context, table string, q repository.Query) ([]schema.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpSelect, table, q.Filters, nil)
	if err := s.takeFailure(OpSelect, table); err != nil {
		return nil, err
	}
	if err := s.checkFilters(table, q.Filters); err != nil {
		return nil, err
	}
	if q.OrderBy != "" {
		if err := s.checkColumn(table, q.OrderBy); err != nil {
			return nil, err
		}
	}

	var out []schema.Row
	for _, r := range s.tables[table] {
		if matches(r, q.Filters) {
			out = append(out, r.Clone())
		}
	}
	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compareValues(out[i][q.OrderBy], out[j][q.OrderBy])
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Insert agrega la fila; genera id y created_at si faltan.
func (s *RowStore) Insert(ctx context.Context, table string, row schema.Row) (schema.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpInsert, table, nil, row)
	if err := s.takeFailure(OpInsert, table); err != nil {
		return nil, err
	}
	for col := range row {
		if err := s.checkColumn(table, col); err != nil {
			return nil, err
		}
	}
	stored := row.Clone()
	if id, _ := stored["id"].(string); id == "" {
		stored["id"] = uuid.New().String()
	}
	if _, ok := stored["created_at"]; !ok && s.hasColumn(table, "created_at") {
		stored["created_at"] = time.Now().UTC()
	}
	s.tables[table] = append(s.tables[table], stored)
	return stored.Clone(), nil
}

// Update aplica patch a las filas que cumplen los filtros y devuelve cuántas cambió.
func (s *RowStore) Update(ctx context.Context, table string, filters []repository.Filter, patch schema.Row) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpUpdate, table, filters, patch)
	if err := s.takeFailure(OpUpdate, table); err != nil {
		return 0, err
	}
	if err := s.checkFilters(table, filters); err != nil {
		return 0, err
	}
	for col := range patch {
		if err := s.checkColumn(table, col); err != nil {
			return 0, err
		}
	}
	var n int64
	for _, r := range s.tables[table] {
		if !matches(r, filters) {
			continue
		}
		for k, v := range patch {
			r[k] = v
		}
		n++
	}
	return n, nil
}

// Delete elimina las filas que cumplen los filtros y devuelve cuántas borró.
func (s *RowStore) Delete(ctx context.Context, table string, filters []repository.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpDelete, table, filters, nil)
	if err := s.takeFailure(OpDelete, table); err != nil {
		return 0, err
	}
	if err := s.checkFilters(table, filters); err != nil {
		return 0, err
	}
	kept := s.tables[table][:0]
	var n int64
	for _, r := range s.tables[table] {
		if matches(r, filters) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	s.tables[table] = kept
	return n, nil
}

func (s *RowStore) record(op, table string, filters []repository.Filter, row schema.Row) {
	c := Call{Op: op, Table: table, Filters: append([]repository.Filter(nil), filters...)}
	if row != nil {
		c.Row = row.Clone()
	}
	s.calls = append(s.calls, c)
}

func (s *RowStore) takeFailure(op, table string) error {
	key := op + ":" + table
	errs := s.failures[key]
	if len(errs) == 0 {
		return nil
	}
	s.failures[key] = errs[1:]
	return errs[0]
}

func (s *RowStore) hasColumn(table, col string) bool {
	set, ok := s.columns[table]
	if !ok {
		return true
	}
	_, ok = set[col]
	return ok
}

func (s *RowStore) checkColumn(table, col string) error {
	if !s.hasColumn(table, col) {
		return fmt.Errorf("%w: %s.%s", domain.ErrUndefinedColumn, table, col)
	}
	return nil
}

func (s *RowStore) checkFilters(table string, filters []repository.Filter) error {
	for _, f := range filters {
		if err := s.checkColumn(table, f.Column); err != nil {
			return err
		}
	}
	return nil
}

func matches(r schema.Row, filters []repository.Filter) bool {
	for _, f := range filters {
		if !equalValues(r[f.Column], f.Value) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as == bs
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// compareValues orden total razonable entre valores heterogéneos; nil va primero.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	ad, aNum := toDecimal(a)
	bd, bNum := toDecimal(b)
	if aNum && bNum {
		return ad.Cmp(bd)
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case float64:
		return decimal.NewFromFloat(t), true
	default:
		return decimal.Zero, false
	}
}
