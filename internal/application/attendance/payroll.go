package attendance

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// payrollEpsilon montos menores o iguales no generan transacción.
var payrollEpsilon = decimal.RequireFromString("0.01")

var millisPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// Shift turno cerrado por una marcación OUT.
type Shift struct {
	In     entity.AttendanceLog
	Out    entity.AttendanceLog
	Hours  decimal.Decimal
	Amount decimal.Decimal
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// OpenShift devuelve la marcación IN más reciente sin OUT posterior del mismo usuario, el
// mismo día calendario (en loc) y anterior a out. Con varios turnos en el día, cada OUT
// cierra el último IN abierto.
func OpenShift(history []entity.AttendanceLog, out entity.AttendanceLog, loc *time.Location) (entity.AttendanceLog, bool) {
	day := make([]entity.AttendanceLog, 0, len(history))
	for _, l := range history {
		if l.ID == out.ID || l.UserID != out.UserID {
			continue
		}
		if l.Timestamp.After(out.Timestamp) || !sameDay(l.Timestamp, out.Timestamp, loc) {
			continue
		}
		day = append(day, l)
	}
	sort.SliceStable(day, func(i, j int) bool { return day[i].Timestamp.Before(day[j].Timestamp) })

	var open *entity.AttendanceLog
	for i := range day {
		switch day[i].Type {
		case entity.PunchIN:
			open = &day[i]
		case entity.PunchOUT:
			open = nil
		}
	}
	if open == nil {
		return entity.AttendanceLog{}, false
	}
	return *open, true
}

// ComputeShift calcula horas y monto del turno que cierra out; false si no hay IN abierto.
func ComputeShift(history []entity.AttendanceLog, out entity.AttendanceLog, rate decimal.Decimal, loc *time.Location) (Shift, bool) {
	in, ok := OpenShift(history, out, loc)
	if !ok {
		return Shift{}, false
	}
	elapsed := out.Timestamp.Sub(in.Timestamp)
	hours := decimal.NewFromInt(elapsed.Milliseconds()).Div(millisPerHour)
	return Shift{
		In:     in,
		Out:    out,
		Hours:  hours,
		Amount: hours.Mul(rate).Round(2),
	}, true
}

// PayrollTransaction gasto fijo de nómina del turno, o nil si el monto es despreciable.
func PayrollTransaction(shift Shift, userName string) *entity.Transaction {
	if shift.Amount.LessThanOrEqual(payrollEpsilon) {
		return nil
	}
	return &entity.Transaction{
		ID:             uuid.New().String(),
		ShopID:         shift.Out.ShopID,
		UserID:         shift.Out.UserID,
		Desc:           fmt.Sprintf("Salario %s (%s h)", userName, shift.Hours.StringFixed(2)),
		Amount:         shift.Amount,
		Type:           entity.TransactionExpense,
		Category:       entity.CategorySalary,
		IsFixedExpense: true,
		Source:         entity.SourcePayrollAuto,
		Date:           shift.Out.Timestamp,
	}
}

// DeriveOnline estado en línea del usuario: su marcación más reciente es IN.
func DeriveOnline(history []entity.AttendanceLog, userID string) bool {
	var latest *entity.AttendanceLog
	for i := range history {
		l := &history[i]
		if l.UserID != userID {
			continue
		}
		if latest == nil || !l.Timestamp.Before(latest.Timestamp) {
			latest = l
		}
	}
	return latest != nil && latest.Type == entity.PunchIN
}
