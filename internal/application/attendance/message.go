package attendance

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
)

// Message fila de asistencia tal como viaja por public:attendance:{shopId}.
type Message struct {
	ID         string    `json:"id"`
	WorkerID   string    `json:"workerId"`
	WorkerName string    `json:"workerName"`
	Type       string    `json:"type"`
	ShopID     string    `json:"shop_id"`
	Timestamp  time.Time `json:"timestamp"`
	Note       string    `json:"note,omitempty"`
}

// ToMessage proyecta la marcación al formato de difusión.
func ToMessage(l entity.AttendanceLog) Message {
	return Message{
		ID:         l.ID,
		WorkerID:   l.UserID,
		WorkerName: l.UserName,
		Type:       l.Type,
		ShopID:     l.ShopID,
		Timestamp:  l.Timestamp,
		Note:       l.Note,
	}
}

// Log proyecta el mensaje a la marcación.
func (m Message) Log() entity.AttendanceLog {
	return entity.AttendanceLog{
		ID:        m.ID,
		UserID:    m.WorkerID,
		UserName:  m.WorkerName,
		Type:      m.Type,
		ShopID:    m.ShopID,
		Timestamp: m.Timestamp,
		Note:      m.Note,
	}
}

// ApplyBroadcast aplica una notificación de fila al historial local y lo devuelve
// ordenado junto con el usuario afectado. Un INSERT de una marcación ya presente se
// trata como UPDATE.
func ApplyBroadcast(history []entity.AttendanceLog, msg ports.Message) ([]entity.AttendanceLog, string, bool) {
	var m Message
	if err := json.Unmarshal(msg.Payload, &m); err != nil || m.ID == "" {
		return history, "", false
	}
	switch msg.Event {
	case ports.EventInsert, ports.EventUpdate:
		return Replace(history, m.Log()), m.WorkerID, true
	case ports.EventDelete:
		return Remove(history, m.ID), m.WorkerID, true
	default:
		return history, "", false
	}
}

// Replace reemplaza (o agrega) la marcación y devuelve una copia en orden cronológico.
func Replace(history []entity.AttendanceLog, l entity.AttendanceLog) []entity.AttendanceLog {
	out := make([]entity.AttendanceLog, 0, len(history)+1)
	found := false
	for _, h := range history {
		if h.ID == l.ID {
			out = append(out, l)
			found = true
			continue
		}
		out = append(out, h)
	}
	if !found {
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// Remove copia del historial sin la marcación id.
func Remove(history []entity.AttendanceLog, id string) []entity.AttendanceLog {
	out := make([]entity.AttendanceLog, 0, len(history))
	for _, h := range history {
		if h.ID != id {
			out = append(out, h)
		}
	}
	return out
}

// ApplyPatch copia de l con el patch aplicado.
func ApplyPatch(l entity.AttendanceLog, p entity.AttendancePatch) entity.AttendanceLog {
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.Timestamp != nil {
		l.Timestamp = *p.Timestamp
	}
	if p.Note != nil {
		l.Note = *p.Note
	}
	return l
}
