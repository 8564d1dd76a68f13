package attendance_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/application/attendance"
	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/memory"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/remote"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type payrollSpy struct {
	mu     sync.Mutex
	events []ports.PayrollEvent
}

func (p *payrollSpy) PublishPayroll(_ context.Context, ev ports.PayrollEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

type fixture struct {
	store   *memory.RowStore
	hub     *memory.Hub
	payroll *payrollSpy
	tracker *attendance.Tracker
	now     time.Time
	worker  entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewRowStore(memory.DefaultSchemas())
	store.Seed(schema.TableProfiles, schema.Row{
		"id": "w1", "name": "Ana", "role": "salesman", "shop_id": "A", "pin": "1234",
		"active": true, "hourlyRate": "10", "is_online": false,
	})
	f := &fixture{
		store:   store,
		hub:     memory.NewHub(),
		payroll: &payrollSpy{},
		now:     time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		worker: entity.User{
			ID: "w1", Name: "Ana", Role: entity.RoleSalesman, ShopID: "A",
			HourlyRate: decimal.NewFromInt(10), Active: true,
		},
	}
	f.tracker = attendance.NewTracker(
		remote.NewAttendanceRepository(store),
		remote.NewTransactionRepository(store),
		remote.NewProfileRepository(store, nil),
		f.hub, f.payroll, time.UTC, nil,
	).WithClock(func() time.Time { return f.now })
	return f
}

// punch crea y persiste una marcación en el instante actual del fixture.
func (f *fixture) punch(t *testing.T, typ string, history []entity.AttendanceLog) ([]entity.AttendanceLog, *attendance.PunchResult) {
	t.Helper()
	entry, err := f.tracker.NewEntry(f.worker, "A", typ)
	require.NoError(t, err)
	res, err := f.tracker.Record(context.Background(), entry, f.worker, history)
	require.NoError(t, err)
	return attendance.Replace(history, res.Log), res
}

func (f *fixture) isOnline(t *testing.T) bool {
	t.Helper()
	u, err := remote.NewProfileRepository(f.store, nil).GetByID(context.Background(), "w1")
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.IsOnline
}

// ──────────────────────────────────────────────────────────────────────────────
// Marcaciones y nómina
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_TurnoCompletoGeneraUnGastoDeNomina(t *testing.T) {
	f := newFixture(t)

	history, in := f.punch(t, "in", nil)
	assert.True(t, in.Online)
	assert.Nil(t, in.Payroll)
	assert.True(t, f.isOnline(t))

	f.now = f.now.Add(8*time.Hour + 30*time.Minute)
	_, out := f.punch(t, entity.PunchOUT, history)
	assert.False(t, out.Online)
	assert.False(t, f.isOnline(t))

	require.NotNil(t, out.Shift)
	assert.True(t, out.Shift.Hours.Equal(decimal.RequireFromString("8.5")))
	require.NotNil(t, out.Payroll)
	assert.True(t, out.Payroll.Amount.Equal(decimal.RequireFromString("85")), out.Payroll.Amount.String())
	assert.Equal(t, entity.TransactionExpense, out.Payroll.Type)
	assert.Equal(t, entity.CategorySalary, out.Payroll.Category)
	assert.True(t, out.Payroll.IsFixedExpense)
	assert.Equal(t, entity.SourcePayrollAuto, out.Payroll.Source)

	assert.Len(t, f.store.Rows(schema.TableTransactions), 1)
	require.Len(t, f.payroll.events, 1)
	assert.Equal(t, out.Payroll.ID, f.payroll.events[0].TransactionID)
	assert.Equal(t, "A", f.payroll.events[0].ShopID)
}

func TestRecord_SalidaSinEntradaNoGeneraNomina(t *testing.T) {
	f := newFixture(t)

	_, out := f.punch(t, entity.PunchOUT, nil)

	assert.Nil(t, out.Shift)
	assert.Nil(t, out.Payroll)
	assert.Empty(t, f.store.Rows(schema.TableTransactions))
	assert.Empty(t, f.payroll.events)
}

func TestRecord_EntradaDeOtroDiaNoCuenta(t *testing.T) {
	f := newFixture(t)
	history, _ := f.punch(t, entity.PunchIN, nil)

	f.now = f.now.Add(24 * time.Hour)
	_, out := f.punch(t, entity.PunchOUT, history)

	assert.Nil(t, out.Payroll)
}

func TestRecord_VariosTurnosEnElDia(t *testing.T) {
	f := newFixture(t)
	history, _ := f.punch(t, entity.PunchIN, nil)
	f.now = f.now.Add(2 * time.Hour)
	history, first := f.punch(t, entity.PunchOUT, history)
	f.now = f.now.Add(time.Hour)
	history, _ = f.punch(t, entity.PunchIN, history)
	f.now = f.now.Add(90 * time.Minute)
	_, second := f.punch(t, entity.PunchOUT, history)

	require.NotNil(t, first.Payroll)
	require.NotNil(t, second.Payroll)
	assert.True(t, first.Payroll.Amount.Equal(decimal.NewFromInt(20)))
	assert.True(t, second.Payroll.Amount.Equal(decimal.NewFromInt(15)))
	assert.Len(t, f.store.Rows(schema.TableTransactions), 2)
}

func TestRecord_MontoDespreciableNoGeneraTransaccion(t *testing.T) {
	f := newFixture(t)
	history, _ := f.punch(t, entity.PunchIN, nil)
	f.now = f.now.Add(3 * time.Second)

	_, out := f.punch(t, entity.PunchOUT, history)

	require.NotNil(t, out.Shift)
	assert.Nil(t, out.Payroll)
	assert.Empty(t, f.store.Rows(schema.TableTransactions))
}

func TestRecord_FalloDePersistenciaDevuelveError(t *testing.T) {
	f := newFixture(t)
	f.store.FailNext(memory.OpInsert, schema.TableAttendance, errors.New("offline"))

	entry, err := f.tracker.NewEntry(f.worker, "A", entity.PunchIN)
	require.NoError(t, err)
	_, err = f.tracker.Record(context.Background(), entry, f.worker, nil)

	require.Error(t, err)
	assert.Empty(t, f.store.Rows(schema.TableAttendance))
	assert.False(t, f.isOnline(t))
}

func TestRecord_FalloDeNominaEsAdvertencia(t *testing.T) {
	f := newFixture(t)
	history, _ := f.punch(t, entity.PunchIN, nil)
	f.now = f.now.Add(time.Hour)
	f.store.FailNext(memory.OpInsert, schema.TableTransactions, errors.New("offline"))

	_, out := f.punch(t, entity.PunchOUT, history)

	assert.Nil(t, out.Payroll)
	assert.NotEmpty(t, out.Warnings)
	assert.Len(t, f.store.Rows(schema.TableAttendance), 2)
}

func TestRecord_DifundeInsercion(t *testing.T) {
	f := newFixture(t)
	msgs, cancel, err := f.hub.Subscribe(context.Background(), ports.AttendanceChannel("A"))
	require.NoError(t, err)
	defer cancel()

	_, res := f.punch(t, entity.PunchIN, nil)

	select {
	case msg := <-msgs:
		assert.Equal(t, ports.EventInsert, msg.Event)
		var m attendance.Message
		require.NoError(t, json.Unmarshal(msg.Payload, &m))
		assert.Equal(t, res.Log.ID, m.ID)
		assert.Equal(t, "w1", m.WorkerID)
	case <-time.After(time.Second):
		t.Fatal("no se recibió la difusión")
	}
}

func TestNewEntry_Validaciones(t *testing.T) {
	f := newFixture(t)

	_, err := f.tracker.NewEntry(f.worker, "A", "BREAK")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.tracker.NewEntry(f.worker, "", entity.PunchIN)
	assert.ErrorIs(t, err, domain.ErrNoActiveShop)

	_, err = f.tracker.NewEntry(entity.User{}, "A", entity.PunchIN)
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RecalculaEstadoEnLinea(t *testing.T) {
	f := newFixture(t)
	history, _ := f.punch(t, entity.PunchIN, nil)
	f.now = f.now.Add(time.Hour)
	history, out := f.punch(t, entity.PunchOUT, history)
	require.False(t, f.isOnline(t))

	res, err := f.tracker.Delete(context.Background(), "A", out.Log.ID, history)
	require.NoError(t, err)

	assert.Equal(t, "w1", res.UserID)
	assert.True(t, res.Online)
	assert.True(t, f.isOnline(t))
	assert.Len(t, f.store.Rows(schema.TableAttendance), 1)
}

func TestUpdate_CambioDeTipoRecalculaEstado(t *testing.T) {
	f := newFixture(t)
	history, in := f.punch(t, entity.PunchIN, nil)

	out := "out"
	res, err := f.tracker.Update(context.Background(), "A", in.Log.ID, entity.AttendancePatch{Type: &out}, history)
	require.NoError(t, err)

	assert.False(t, res.Online)
	assert.False(t, f.isOnline(t))
	assert.Equal(t, entity.PunchOUT, f.store.Rows(schema.TableAttendance)[0]["type"])
}

func TestUpdate_TipoInvalido(t *testing.T) {
	f := newFixture(t)
	history, in := f.punch(t, entity.PunchIN, nil)

	bad := "LUNCH"
	_, err := f.tracker.Update(context.Background(), "A", in.Log.ID, entity.AttendancePatch{Type: &bad}, history)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.tracker.Delete(context.Background(), "A", "nope", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateDelete_MarcacionDeOtraTienda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Seed(schema.TableProfiles, schema.Row{
		"id": "w2", "name": "Beto", "role": "salesman", "shop_id": "B", "active": true, "is_online": true,
	})
	f.store.Seed(schema.TableAttendance, schema.Row{
		"id": "b1", "workerId": "w2", "workerName": "Beto", "type": "IN", "shop_id": "B", "timestamp": f.now,
	})
	logB := entity.AttendanceLog{ID: "b1", UserID: "w2", Type: entity.PunchIN, ShopID: "B", Timestamp: f.now}
	out := "OUT"

	_, err := f.tracker.Update(ctx, "A", "b1", entity.AttendancePatch{Type: &out}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.tracker.Delete(ctx, "A", "b1", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// el historial recibido tampoco habilita marcaciones ajenas
	_, err = f.tracker.Delete(ctx, "A", "b1", []entity.AttendanceLog{logB})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.tracker.Delete(ctx, "", "b1", nil)
	assert.ErrorIs(t, err, domain.ErrNoActiveShop)

	rows := f.store.Rows(schema.TableAttendance)
	require.Len(t, rows, 1)
	assert.Equal(t, "IN", rows[0]["type"])
	for _, c := range f.store.Calls() {
		assert.False(t, c.Table == schema.TableProfiles && c.Op == memory.OpUpdate, "no se toca el estado en línea de otra tienda")
	}
}
