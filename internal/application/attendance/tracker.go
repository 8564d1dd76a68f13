// Package attendance registra marcaciones de entrada/salida, deriva el estado en línea
// y genera automáticamente el gasto de nómina al cerrar un turno.
package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
)

// Tracker registro de asistencia. Sin estado: el historial lo aporta el llamador.
type Tracker struct {
	logs        repository.AttendanceRepository
	txs         repository.TransactionRepository
	profiles    repository.ProfileRepository
	broadcaster ports.Broadcaster
	payroll     ports.PayrollPublisher
	log         *logger.Logger
	now         func() time.Time
	loc         *time.Location
}

// NewTracker construye el registro de asistencia. loc define el día calendario de la
// nómina (nil = time.Local).
func NewTracker(
	logs repository.AttendanceRepository,
	txs repository.TransactionRepository,
	profiles repository.ProfileRepository,
	broadcaster ports.Broadcaster,
	payroll ports.PayrollPublisher,
	loc *time.Location,
	log *logger.Logger,
) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{
		logs:        logs,
		txs:         txs,
		profiles:    profiles,
		broadcaster: broadcaster,
		payroll:     payroll,
		log:         logger.OrNop(log).Component("attendance"),
		now:         time.Now,
		loc:         loc,
	}
}

// WithClock reemplaza el reloj (tests).
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Load marcaciones de la tienda en orden cronológico.
func (t *Tracker) Load(ctx context.Context, shopID string) ([]entity.AttendanceLog, error) {
	if shopID == "" {
		return nil, domain.ErrNoActiveShop
	}
	return t.logs.ListByShop(ctx, shopID)
}

// NewEntry marcación lista para agregarse de forma optimista antes de persistirla.
func (t *Tracker) NewEntry(actor entity.User, shopID, punchType string) (entity.AttendanceLog, error) {
	punchType = strings.ToUpper(strings.TrimSpace(punchType))
	if punchType != entity.PunchIN && punchType != entity.PunchOUT {
		return entity.AttendanceLog{}, fmt.Errorf("%w: tipo de marcación %q", domain.ErrInvalidInput, punchType)
	}
	if shopID == "" {
		return entity.AttendanceLog{}, domain.ErrNoActiveShop
	}
	if actor.ID == "" {
		return entity.AttendanceLog{}, domain.ErrNotLoggedIn
	}
	return entity.AttendanceLog{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		UserName:  actor.Name,
		Type:      punchType,
		ShopID:    shopID,
		Timestamp: t.now().UTC(),
	}, nil
}

// PunchResult efectos de una marcación persistida.
type PunchResult struct {
	Log      entity.AttendanceLog
	Online   bool
	Shift    *Shift
	Payroll  *entity.Transaction
	Warnings []string
}

// Record persiste la marcación. Si falla, el llamador debe revertir la entrada optimista.
// Los efectos posteriores (estado en línea, difusión, nómina) no revierten la marcación:
// sus fallos se devuelven como advertencias.
func (t *Tracker) Record(ctx context.Context, entry entity.AttendanceLog, actor entity.User, history []entity.AttendanceLog) (*PunchResult, error) {
	stored, err := t.logs.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("registrar marcación: %w", err)
	}
	if stored.Timestamp.IsZero() {
		stored.Timestamp = entry.Timestamp
	}
	log := t.log.With("shop_id", entry.ShopID)
	res := &PunchResult{Log: *stored, Online: entry.Type == entity.PunchIN}

	if err := t.setOnline(ctx, actor.ID, res.Online); err != nil {
		log.Warn().Err(err).Str("user_id", actor.ID).Msg("estado en línea no persistido")
		res.Warnings = append(res.Warnings, "estado en línea no persistido")
	}
	t.notify(ctx, ports.EventInsert, res.Log)

	if entry.Type != entity.PunchOUT {
		return res, nil
	}
	shift, ok := ComputeShift(history, res.Log, actor.HourlyRate, t.loc)
	if !ok {
		log.Debug().Str("user_id", actor.ID).Msg("salida sin entrada abierta en el día; sin nómina")
		return res, nil
	}
	res.Shift = &shift
	tx := PayrollTransaction(shift, actor.Name)
	if tx == nil {
		return res, nil
	}
	created, err := t.txs.Create(ctx, *tx)
	if err != nil {
		log.Warn().Err(err).Str("user_id", actor.ID).Msg("gasto de nómina no registrado")
		res.Warnings = append(res.Warnings, "gasto de nómina no registrado")
		return res, nil
	}
	res.Payroll = created

	ev := ports.PayrollEvent{
		TransactionID: created.ID,
		ShopID:        created.ShopID,
		UserID:        actor.ID,
		UserName:      actor.Name,
		Hours:         shift.Hours.Round(4),
		HourlyRate:    actor.HourlyRate,
		Amount:        created.Amount,
		ShiftStart:    shift.In.Timestamp,
		ShiftEnd:      shift.Out.Timestamp,
	}
	if err := t.payroll.PublishPayroll(ctx, ev); err != nil {
		log.Warn().Err(err).Str("transaction_id", created.ID).Msg("evento de nómina no publicado")
	}
	return res, nil
}

// ChangeResult estado en línea recalculado tras editar o borrar una marcación.
type ChangeResult struct {
	UserID string
	Online bool
}

// Update edita una marcación de la tienda shopID y recalcula el estado en línea del usuario.
// history es el historial local de la tienda antes del cambio.
func (t *Tracker) Update(ctx context.Context, shopID, id string, patch entity.AttendancePatch, history []entity.AttendanceLog) (*ChangeResult, error) {
	if patch.Type != nil {
		typ := strings.ToUpper(*patch.Type)
		if typ != entity.PunchIN && typ != entity.PunchOUT {
			return nil, fmt.Errorf("%w: tipo de marcación %q", domain.ErrInvalidInput, *patch.Type)
		}
		patch.Type = &typ
	}
	target, err := t.find(ctx, shopID, id, history)
	if err != nil {
		return nil, err
	}
	if err := t.logs.Update(ctx, id, shopID, patch); err != nil {
		return nil, fmt.Errorf("editar marcación: %w", err)
	}
	updated := ApplyPatch(*target, patch)
	next := Replace(history, updated)
	res := &ChangeResult{UserID: updated.UserID, Online: DeriveOnline(next, updated.UserID)}
	if err := t.setOnline(ctx, res.UserID, res.Online); err != nil {
		t.log.Warn().Err(err).Str("user_id", res.UserID).Msg("estado en línea no persistido")
	}
	t.notify(ctx, ports.EventUpdate, updated)
	return res, nil
}

// Delete borra una marcación de la tienda shopID y recalcula el estado en línea del usuario.
func (t *Tracker) Delete(ctx context.Context, shopID, id string, history []entity.AttendanceLog) (*ChangeResult, error) {
	target, err := t.find(ctx, shopID, id, history)
	if err != nil {
		return nil, err
	}
	if err := t.logs.Delete(ctx, id, shopID); err != nil {
		return nil, fmt.Errorf("eliminar marcación: %w", err)
	}
	next := Remove(history, id)
	res := &ChangeResult{UserID: target.UserID, Online: DeriveOnline(next, target.UserID)}
	if err := t.setOnline(ctx, res.UserID, res.Online); err != nil {
		t.log.Warn().Err(err).Str("user_id", res.UserID).Msg("estado en línea no persistido")
	}
	t.notify(ctx, ports.EventDelete, *target)
	return res, nil
}

// find localiza la marcación dentro de la tienda; una marcación de otra tienda no existe
// para el llamador.
func (t *Tracker) find(ctx context.Context, shopID, id string, history []entity.AttendanceLog) (*entity.AttendanceLog, error) {
	if shopID == "" {
		return nil, domain.ErrNoActiveShop
	}
	for i := range history {
		if history[i].ID == id && history[i].ShopID == shopID {
			l := history[i]
			return &l, nil
		}
	}
	l, err := t.logs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil || l.ShopID != shopID {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func (t *Tracker) setOnline(ctx context.Context, userID string, online bool) error {
	if userID == "" {
		return nil
	}
	return t.profiles.Update(ctx, userID, "", schema.ProfilePatch{IsOnline: &online})
}

func (t *Tracker) notify(ctx context.Context, event string, l entity.AttendanceLog) {
	payload, err := json.Marshal(ToMessage(l))
	if err != nil {
		return
	}
	if err := t.broadcaster.Publish(ctx, ports.AttendanceChannel(l.ShopID), event, payload); err != nil {
		t.log.Warn().Err(err).Str("event", event).Msg("difusión de asistencia falló")
	}
}
