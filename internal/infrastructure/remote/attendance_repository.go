package remote

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
)

var (
	_ repository.AttendanceRepository  = (*AttendanceRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
)

// AttendanceRepo marcaciones sobre el almacén de filas.
type AttendanceRepo struct {
	store repository.RowStore
}

// NewAttendanceRepository construye el repositorio de marcaciones.
func NewAttendanceRepository(store repository.RowStore) *AttendanceRepo {
	return &AttendanceRepo{store: store}
}

// ListByShop marcaciones de la tienda en orden cronológico.
func (r *AttendanceRepo) ListByShop(ctx context.Context, shopID string) ([]entity.AttendanceLog, error) {
	filters := []repository.Filter{repository.Eq(schema.Column(schema.FieldShopID), shopID)}
	rows, err := selectOrdered(ctx, r.store, schema.TableAttendance, filters, false, schema.Columns(schema.FieldTimestamp)...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	out := make([]entity.AttendanceLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, schema.AttendanceFromRow(row))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// GetByID obtiene una marcación; (nil, nil) si no existe.
func (r *AttendanceRepo) GetByID(ctx context.Context, id string) (*entity.AttendanceLog, error) {
	row, err := selectOne(ctx, r.store, schema.TableAttendance, byID(id))
	if err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	l := schema.AttendanceFromRow(row)
	return &l, nil
}

// Create persiste la marcación; la nota es opcional en el esquema.
func (r *AttendanceRepo) Create(ctx context.Context, log entity.AttendanceLog) (*entity.AttendanceLog, error) {
	row := schema.AttendanceRow(log)
	stored, err := insertAttempts(ctx, r.store, schema.TableAttendance, row, row.Without(schema.Column(schema.FieldNote)))
	if err != nil {
		return nil, fmt.Errorf("insert attendance: %w", err)
	}
	created := schema.AttendanceFromRow(stored)
	return &created, nil
}

// Update actualización parcial de una marcación de la tienda.
func (r *AttendanceRepo) Update(ctx context.Context, id, shopID string, patch entity.AttendancePatch) error {
	row := schema.AttendancePatchRow(patch)
	if row.IsEmpty() {
		return nil
	}
	n, err := r.store.Update(ctx, schema.TableAttendance, scoped(id, shopID), row)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra una marcación de la tienda.
func (r *AttendanceRepo) Delete(ctx context.Context, id, shopID string) error {
	n, err := r.store.Delete(ctx, schema.TableAttendance, scoped(id, shopID))
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var optionalTransactionColumns = columnsOf(
	schema.FieldWorkerID, schema.FieldSource, schema.FieldIsFixedExpense,
)

// TransactionRepo transacciones contables sobre el almacén de filas.
type TransactionRepo struct {
	store repository.RowStore
}

// NewTransactionRepository construye el repositorio de transacciones.
func NewTransactionRepository(store repository.RowStore) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Create persiste la transacción.
func (r *TransactionRepo) Create(ctx context.Context, tx entity.Transaction) (*entity.Transaction, error) {
	row := schema.TransactionRow(tx)
	stored, err := insertAttempts(ctx, r.store, schema.TableTransactions, row, row.Without(optionalTransactionColumns...))
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	created := schema.TransactionFromRow(stored)
	return &created, nil
}

// ListByShop transacciones de la tienda con fecha en [from, to]. El almacén solo filtra por
// igualdad, el rango se aplica aquí.
func (r *TransactionRepo) ListByShop(ctx context.Context, shopID string, from, to time.Time) ([]entity.Transaction, error) {
	rows, err := r.store.Select(ctx, schema.TableTransactions, repository.Query{
		Filters: []repository.Filter{repository.Eq(schema.Column(schema.FieldShopID), shopID)},
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	var out []entity.Transaction
	for _, row := range rows {
		t := schema.TransactionFromRow(row)
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
