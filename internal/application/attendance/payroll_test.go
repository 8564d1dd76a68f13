package attendance_test

import (
	"testing"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/application/attendance"
	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func logAt(id, user, typ string, ts time.Time) entity.AttendanceLog {
	return entity.AttendanceLog{ID: id, UserID: user, Type: typ, ShopID: "A", Timestamp: ts}
}

func TestOpenShift_UltimaEntradaAbierta(t *testing.T) {
	history := []entity.AttendanceLog{
		logAt("1", "u", entity.PunchIN, at(8, 0)),
		logAt("2", "u", entity.PunchIN, at(9, 0)),
		logAt("3", "x", entity.PunchIN, at(10, 0)),
	}
	in, ok := attendance.OpenShift(history, logAt("4", "u", entity.PunchOUT, at(12, 0)), time.UTC)
	assert.True(t, ok)
	assert.Equal(t, "2", in.ID)
}

func TestOpenShift_EntradaYaCerrada(t *testing.T) {
	history := []entity.AttendanceLog{
		logAt("1", "u", entity.PunchIN, at(8, 0)),
		logAt("2", "u", entity.PunchOUT, at(9, 0)),
	}
	_, ok := attendance.OpenShift(history, logAt("3", "u", entity.PunchOUT, at(12, 0)), time.UTC)
	assert.False(t, ok)
}

func TestOpenShift_DiaCalendarioSegunZona(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	// 23:00 y 01:00 UTC son el mismo día (18:00 y 20:00) en UTC-5.
	in := logAt("1", "u", entity.PunchIN, time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC))
	out := logAt("2", "u", entity.PunchOUT, time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC))

	_, ok := attendance.OpenShift([]entity.AttendanceLog{in}, out, bogota)
	assert.True(t, ok)
	_, ok = attendance.OpenShift([]entity.AttendanceLog{in}, out, time.UTC)
	assert.False(t, ok)
}

func TestDeriveOnline_GanaLaMasReciente(t *testing.T) {
	history := []entity.AttendanceLog{
		logAt("2", "u", entity.PunchOUT, at(12, 0)),
		logAt("1", "u", entity.PunchIN, at(8, 0)),
		logAt("3", "x", entity.PunchIN, at(13, 0)),
	}
	assert.False(t, attendance.DeriveOnline(history, "u"))
	assert.True(t, attendance.DeriveOnline(history, "x"))
	assert.False(t, attendance.DeriveOnline(history, "nadie"))
}

func TestApplyBroadcast(t *testing.T) {
	l := logAt("1", "u", entity.PunchIN, at(8, 0))
	payload := []byte(`{"id":"1","workerId":"u","type":"IN","shop_id":"A","timestamp":"2026-03-02T08:00:00Z"}`)

	history, userID, ok := attendance.ApplyBroadcast(nil, ports.Message{Event: ports.EventInsert, Payload: payload})
	assert.True(t, ok)
	assert.Equal(t, "u", userID)
	assert.Len(t, history, 1)
	assert.True(t, l.Timestamp.Equal(history[0].Timestamp))

	history, _, ok = attendance.ApplyBroadcast(history, ports.Message{Event: ports.EventInsert, Payload: payload})
	assert.True(t, ok)
	assert.Len(t, history, 1)

	history, _, ok = attendance.ApplyBroadcast(history, ports.Message{Event: ports.EventDelete, Payload: payload})
	assert.True(t, ok)
	assert.Empty(t, history)

	_, _, ok = attendance.ApplyBroadcast(history, ports.Message{Event: ports.EventInsert, Payload: []byte("{")})
	assert.False(t, ok)
}
