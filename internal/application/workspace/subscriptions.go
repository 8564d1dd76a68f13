package workspace

import (
	"encoding/json"

	"github.com/jhoicas/DailyBooks-api/internal/application/attendance"
	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
)

// subscribeSettings se suscribe una sola vez a public:settings.
func (w *Workspace) subscribeSettings() {
	w.subMu.Lock()
	defer w.subMu.Unlock()
	if w.settingsSub != nil || w.lifecycle.Err() != nil {
		return
	}
	msgs, cancel, err := w.deps.Broadcaster.Subscribe(w.lifecycle, ports.ChannelSettings)
	if err != nil {
		w.log.Warn().Err(err).Msg("sin suscripción a la configuración compartida")
		return
	}
	w.settingsSub = cancel
	go consume(msgs, w.handleSettings)
}

// watchAttendance apunta la suscripción de marcaciones a la tienda ("" = ninguna).
func (w *Workspace) watchAttendance(shopID string) {
	w.subMu.Lock()
	defer w.subMu.Unlock()
	if shopID == w.watchedShop && (shopID == "" || w.attendanceSub != nil) {
		return
	}
	if w.attendanceSub != nil {
		w.attendanceSub()
		w.attendanceSub = nil
	}
	w.watchedShop = shopID
	if shopID == "" || w.lifecycle.Err() != nil {
		return
	}
	msgs, cancel, err := w.deps.Broadcaster.Subscribe(w.lifecycle, ports.AttendanceChannel(shopID))
	if err != nil {
		w.log.Warn().Err(err).Str("shop_id", shopID).Msg("sin suscripción a las marcaciones")
		return
	}
	w.attendanceSub = cancel
	go consume(msgs, func(msg ports.Message) { w.handleAttendance(shopID, msg) })
}

func consume(msgs <-chan ports.Message, handle func(ports.Message)) {
	for msg := range msgs {
		handle(msg)
	}
}

func (w *Workspace) handleSettings(msg ports.Message) {
	if msg.Event != ports.EventSettingsSync {
		return
	}
	var m SettingMessage
	if err := json.Unmarshal(msg.Payload, &m); err != nil {
		w.log.Debug().Err(err).Msg("settings_sync ilegible")
		return
	}
	if m.Origin == w.id {
		return
	}
	w.mu.Lock()
	err := w.applySettingLocked(m.Key, m.Value)
	w.mu.Unlock()
	if err != nil {
		w.log.Debug().Err(err).Str("key", m.Key).Msg("settings_sync ignorado")
	}
}

func (w *Workspace) handleAttendance(shopID string, msg ports.Message) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.activeShopID != shopID {
		return
	}
	logs, userID, ok := attendance.ApplyBroadcast(w.state.logs, msg)
	if !ok {
		return
	}
	w.state.logs = logs
	w.mirrorOnlineLocked(userID, attendance.DeriveOnline(logs, userID))
}
