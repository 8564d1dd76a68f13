package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
)

var _ ports.Broadcaster = (*Hub)(nil)

const subscriberBuffer = 64

// Hub difusión pub/sub dentro del proceso. Best-effort: si el buffer de un suscriptor
// está lleno el mensaje se descarta para ese suscriptor.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan ports.Message
}

// NewHub construye el hub vacío.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan ports.Message)}
}

// Publish entrega el mensaje a los suscriptores actuales del canal.
func (h *Hub) Publish(_ context.Context, channel, event string, payload []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	msg := ports.Message{Channel: channel, Event: event, Payload: append([]byte(nil), payload...)}
	for _, ch := range h.subs[channel] {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

// Subscribe registra un suscriptor. La suscripción termina con cancel o al cerrarse ctx.
func (h *Hub) Subscribe(ctx context.Context, channel string) (<-chan ports.Message, func(), error) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan ports.Message, subscriberBuffer)
	if h.subs[channel] == nil {
		h.subs[channel] = make(map[int]chan ports.Message)
	}
	h.subs[channel][id] = ch
	h.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[channel], id)
			h.mu.Unlock()
			close(ch)
			close(done)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel, nil
}
