package workspace

import (
	"context"
	"strings"

	"github.com/jhoicas/DailyBooks-api/internal/application/attendance"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
)

// RefreshAttendance recarga las marcaciones de la tienda activa.
func (w *Workspace) RefreshAttendance(ctx context.Context) ([]entity.AttendanceLog, error) {
	_, _, shopID, ok := w.current()
	if !ok {
		return nil, domain.ErrNotLoggedIn
	}
	logs, err := w.deps.Attendance.Load(ctx, shopID)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	if w.state.activeShopID == shopID {
		w.state.logs = logs
	}
	w.mu.Unlock()
	return append([]entity.AttendanceLog(nil), logs...), nil
}

// Punch registra una marcación del usuario de la sesión en la tienda activa. La entrada se
// agrega al estado local antes de persistirla y se revierte si la persistencia falla.
func (w *Workspace) Punch(ctx context.Context, punchType string) (*attendance.PunchResult, error) {
	user, _, shopID, ok := w.current()
	if !ok {
		return nil, domain.ErrNotLoggedIn
	}
	entry, err := w.deps.Attendance.NewEntry(user, shopID, punchType)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	history := append([]entity.AttendanceLog(nil), w.state.logs...)
	w.state.logs = attendance.Replace(w.state.logs, entry)
	w.mu.Unlock()

	res, err := w.deps.Attendance.Record(ctx, entry, user, history)
	if err != nil {
		w.mu.Lock()
		w.state.logs = attendance.Remove(w.state.logs, entry.ID)
		w.mu.Unlock()
		w.log.Warn().Err(err).Str("log_id", entry.ID).Msg("marcación no persistida; entrada local revertida")
		return nil, err
	}

	w.mu.Lock()
	if w.state.activeShopID == shopID {
		w.state.logs = attendance.Replace(w.state.logs, res.Log)
	}
	w.mirrorOnlineLocked(user.ID, res.Online)
	w.mu.Unlock()
	return res, nil
}

// UpdateAttendance edita una marcación de la tienda activa.
func (w *Workspace) UpdateAttendance(ctx context.Context, id string, patch entity.AttendancePatch) (*attendance.ChangeResult, error) {
	_, shopID, err := w.manager()
	if err != nil {
		return nil, err
	}
	if patch.Type != nil {
		typ := strings.ToUpper(strings.TrimSpace(*patch.Type))
		patch.Type = &typ
	}
	history := w.logs()
	res, err := w.deps.Attendance.Update(ctx, shopID, id, patch, history)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	for _, l := range w.state.logs {
		if l.ID == id {
			w.state.logs = attendance.Replace(w.state.logs, attendance.ApplyPatch(l, patch))
			break
		}
	}
	w.mirrorOnlineLocked(res.UserID, res.Online)
	w.mu.Unlock()
	return res, nil
}

// DeleteAttendance borra una marcación de la tienda activa.
func (w *Workspace) DeleteAttendance(ctx context.Context, id string) (*attendance.ChangeResult, error) {
	_, shopID, err := w.manager()
	if err != nil {
		return nil, err
	}
	res, err := w.deps.Attendance.Delete(ctx, shopID, id, w.logs())
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.state.logs = attendance.Remove(w.state.logs, id)
	w.mirrorOnlineLocked(res.UserID, res.Online)
	w.mu.Unlock()
	return res, nil
}

func (w *Workspace) logs() []entity.AttendanceLog {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]entity.AttendanceLog(nil), w.state.logs...)
}

// mirrorOnlineLocked refleja el estado en línea en la lista de vendedores y en el usuario
// de la sesión.
func (w *Workspace) mirrorOnlineLocked(userID string, online bool) {
	if userID == "" {
		return
	}
	for i := range w.state.salesmen {
		if w.state.salesmen[i].ID == userID {
			w.state.salesmen[i].IsOnline = online
		}
	}
	if w.state.user != nil && w.state.user.ID == userID {
		w.state.user.IsOnline = online
	}
}
