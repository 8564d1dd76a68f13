package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/application/analytics"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/memory"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/remote"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id, shop, typ, category, amount string, date time.Time) schema.Row {
	return schema.Row{
		"id": id, "shop_id": shop, "type": typ, "category": category, "amount": amount,
		"desc": id, "date": date,
	}
}

func TestGetSummary_TotalesDelDiaYDelMes(t *testing.T) {
	now := time.Date(2026, 2, 14, 15, 0, 0, 0, time.UTC)
	store := memory.NewRowStore(memory.DefaultSchemas())
	store.Seed(schema.TableTransactions,
		tx("t1", "A", "income", "Venta", "100.50", now.Add(-time.Hour)),
		tx("t2", "A", "expense", "Salary", "40", now.Add(-2*time.Hour)),
		tx("t3", "A", "income", "Venta", "200", now.AddDate(0, 0, -3)),
		tx("t4", "A", "expense", "Arriendo", "60", now.AddDate(0, 0, -5)),
		tx("t5", "A", "income", "Venta", "999", now.AddDate(0, -1, 0)),
		tx("t6", "B", "income", "Venta", "500", now),
	)
	store.Seed(schema.TableAttendance,
		schema.Row{"id": "a1", "workerId": "w1", "workerName": "Ana", "type": "IN", "shop_id": "A", "timestamp": now.Add(-3 * time.Hour)},
		schema.Row{"id": "a2", "workerId": "w2", "workerName": "Beto", "type": "IN", "shop_id": "A", "timestamp": now.Add(-4 * time.Hour)},
		schema.Row{"id": "a3", "workerId": "w2", "workerName": "Beto", "type": "OUT", "shop_id": "A", "timestamp": now.Add(-time.Hour)},
	)

	uc := analytics.NewDashboardUseCase(remote.NewTransactionRepository(store), remote.NewAttendanceRepository(store)).
		WithClock(func() time.Time { return now }).
		WithLocation(time.UTC)

	got, err := uc.GetSummary(context.Background(), "A")
	require.NoError(t, err)

	assert.True(t, got.Today.Income.Equal(decimal.RequireFromString("100.50")))
	assert.True(t, got.Today.Salary.Equal(decimal.NewFromInt(40)))
	assert.True(t, got.Today.Net.Equal(decimal.RequireFromString("60.50")))
	assert.True(t, got.Month.Income.Equal(decimal.RequireFromString("300.50")))
	assert.True(t, got.Month.Expense.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.Month.Net.Equal(decimal.RequireFromString("200.50")))
	assert.Equal(t, "Febrero 2026", got.DateLabel)

	require.Equal(t, 1, got.OnlineCount)
	assert.Equal(t, "Ana", got.Online[0].Name)
}

func TestGetSummary_SinTienda(t *testing.T) {
	store := memory.NewRowStore(memory.DefaultSchemas())
	uc := analytics.NewDashboardUseCase(remote.NewTransactionRepository(store), remote.NewAttendanceRepository(store))

	_, err := uc.GetSummary(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNoActiveShop)
}

func TestGetSummary_DiaSegunZonaHoraria(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	// 03:00 UTC del 14 = 22:00 del 13 en Bogotá
	now := time.Date(2026, 2, 14, 3, 0, 0, 0, time.UTC)
	store := memory.NewRowStore(memory.DefaultSchemas())
	store.Seed(schema.TableTransactions,
		tx("t1", "A", "income", "Venta", "70", time.Date(2026, 2, 13, 6, 0, 0, 0, time.UTC)),
		tx("t2", "A", "income", "Venta", "30", time.Date(2026, 2, 14, 1, 0, 0, 0, time.UTC)),
	)
	newUC := func() *analytics.DashboardUseCase {
		return analytics.NewDashboardUseCase(remote.NewTransactionRepository(store), remote.NewAttendanceRepository(store)).
			WithClock(func() time.Time { return now })
	}

	got, err := newUC().WithLocation(bogota).GetSummary(context.Background(), "A")
	require.NoError(t, err)
	assert.True(t, got.Today.Income.Equal(decimal.NewFromInt(100)), "en Bogotá ambas caen el 13")

	got, err = newUC().WithLocation(time.UTC).GetSummary(context.Background(), "A")
	require.NoError(t, err)
	assert.True(t, got.Today.Income.Equal(decimal.NewFromInt(30)), "en UTC solo t2 es de hoy")
}
