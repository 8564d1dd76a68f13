// Package analytics contiene el tablero financiero de una tienda: ingresos, gastos
// y nómina del día y del mes en curso, más el personal en línea.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/application/attendance"
	"github.com/jhoicas/DailyBooks-api/internal/application/dto"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardUseCase genera el resumen financiero del día y del mes en curso.
//
// Fuente de datos: transacciones y marcaciones de la tienda (lectura).
type DashboardUseCase struct {
	txs  repository.TransactionRepository
	logs repository.AttendanceRepository
	now  func() time.Time
	loc  *time.Location
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(txs repository.TransactionRepository, logs repository.AttendanceRepository) *DashboardUseCase {
	return &DashboardUseCase{txs: txs, logs: logs, now: time.Now, loc: time.Local}
}

// WithLocation fija la zona horaria que define el día y el mes en curso.
func (uc *DashboardUseCase) WithLocation(loc *time.Location) *DashboardUseCase {
	if loc != nil {
		uc.loc = loc
	}
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el ShopDashboardDTO de la tienda indicada.
//
// Tres llamadas en paralelo:
//  1. transacciones de hoy  → Today
//  2. transacciones del mes → Month
//  3. marcaciones           → personal en línea
func (uc *DashboardUseCase) GetSummary(ctx context.Context, shopID string) (*dto.ShopDashboardDTO, error) {
	if shopID == "" {
		return nil, domain.ErrNoActiveShop
	}
	now := uc.now().In(uc.loc)

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type txResult struct {
		txs []entity.Transaction
		err error
	}
	type logsResult struct {
		logs []entity.AttendanceLog
		err  error
	}

	todayCh := make(chan txResult, 1)
	monthCh := make(chan txResult, 1)
	logsCh := make(chan logsResult, 1)

	go func() {
		txs, err := uc.txs.ListByShop(ctx, shopID, todayStart, todayEnd)
		todayCh <- txResult{txs, err}
	}()
	go func() {
		txs, err := uc.txs.ListByShop(ctx, shopID, monthStart, todayEnd)
		monthCh <- txResult{txs, err}
	}()
	go func() {
		logs, err := uc.logs.ListByShop(ctx, shopID)
		logsCh <- logsResult{logs, err}
	}()

	today := <-todayCh
	month := <-monthCh
	logs := <-logsCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: transacciones de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: transacciones del mes: %w", month.err)
	}
	if logs.err != nil {
		return nil, fmt.Errorf("dashboard: marcaciones: %w", logs.err)
	}

	online := OnlineStaff(logs.logs)
	return &dto.ShopDashboardDTO{
		ShopID:      shopID,
		Today:       Totals(today.txs),
		Month:       Totals(month.txs),
		OnlineCount: len(online),
		Online:      online,
		DateLabel:   monthLabel(now),
	}, nil
}

// Totals suma ingresos, gastos y nómina. Net = ingresos - gastos (la nómina es un gasto).
func Totals(txs []entity.Transaction) dto.PeriodTotalsDTO {
	income, expense, salary := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case entity.TransactionIncome:
			income = income.Add(t.Amount)
		case entity.TransactionExpense:
			expense = expense.Add(t.Amount)
			if t.Category == entity.CategorySalary {
				salary = salary.Add(t.Amount)
			}
		}
	}
	return dto.PeriodTotalsDTO{
		Income:  income.Round(2),
		Expense: expense.Round(2),
		Salary:  salary.Round(2),
		Net:     income.Sub(expense).Round(2),
	}
}

// OnlineStaff usuarios cuya marcación más reciente es IN, ordenados por nombre.
func OnlineStaff(logs []entity.AttendanceLog) []dto.OnlineStaffDTO {
	names := make(map[string]string)
	for _, l := range logs {
		if _, seen := names[l.UserID]; !seen || l.UserName != "" {
			names[l.UserID] = l.UserName
		}
	}
	out := make([]dto.OnlineStaffDTO, 0)
	for id, name := range names {
		if attendance.DeriveOnline(logs, id) {
			out = append(out, dto.OnlineStaffDTO{UserID: id, Name: name})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
