package repository

import (
	"context"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
)

// AttendanceRepository puerto de persistencia para marcaciones.
type AttendanceRepository interface {
	// ListByShop devuelve las marcaciones de la tienda en orden cronológico.
	ListByShop(ctx context.Context, shopID string) ([]entity.AttendanceLog, error)
	GetByID(ctx context.Context, id string) (*entity.AttendanceLog, error)
	Create(ctx context.Context, log entity.AttendanceLog) (*entity.AttendanceLog, error)
	// Update y Delete se limitan a la tienda shopID; fuera de ella devuelven domain.ErrNotFound.
	Update(ctx context.Context, id, shopID string, patch entity.AttendancePatch) error
	Delete(ctx context.Context, id, shopID string) error
}

// TransactionRepository puerto de persistencia para transacciones contables.
type TransactionRepository interface {
	Create(ctx context.Context, tx entity.Transaction) (*entity.Transaction, error)
	// ListByShop devuelve las transacciones con fecha en [from, to].
	ListByShop(ctx context.Context, shopID string, from, to time.Time) ([]entity.Transaction, error)
}
