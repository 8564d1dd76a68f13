package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var _ ports.Broadcaster = (*Broadcaster)(nil)

const subscriberBuffer = 64

// envelope formato en el cable: el canal Redis ya identifica el canal lógico.
type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func encodeEnvelope(event string, payload []byte) ([]byte, error) {
	env := envelope{Event: event}
	if len(payload) > 0 {
		if !json.Valid(payload) {
			return nil, fmt.Errorf("payload no es JSON válido")
		}
		env.Payload = payload
	}
	return json.Marshal(env)
}

func decodeEnvelope(channel string, raw string) (ports.Message, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return ports.Message{}, err
	}
	return ports.Message{Channel: channel, Event: env.Event, Payload: []byte(env.Payload)}, nil
}

// Broadcaster difusión entre instancias sobre Redis Pub/Sub. Best-effort: sin
// persistencia ni reentrega; un suscriptor lento pierde mensajes.
type Broadcaster struct {
	client *redis.Client
	keys   keys
	log    *logger.Logger
}

// NewBroadcaster crea el adaptador de difusión.
func NewBroadcaster(client *redis.Client, prefix string, log *logger.Logger) *Broadcaster {
	return &Broadcaster{client: client, keys: newKeys(prefix), log: logger.OrNop(log).Component("broadcast")}
}

// Publish publica el evento en el canal.
func (b *Broadcaster) Publish(ctx context.Context, channel, event string, payload []byte) error {
	raw, err := encodeEnvelope(event, payload)
	if err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return b.client.Publish(ctx, b.keys.channel(channel), raw).Err()
}

// Subscribe se suscribe al canal; la suscripción termina con cancel o al cerrarse ctx.
func (b *Broadcaster) Subscribe(ctx context.Context, channel string) (<-chan ports.Message, func(), error) {
	pubsub := b.client.Subscribe(ctx, b.keys.channel(channel))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	out := make(chan ports.Message, subscriberBuffer)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}

	go func() {
		defer close(out)
		in := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case <-done:
				return
			case m, ok := <-in:
				if !ok {
					return
				}
				msg, err := decodeEnvelope(strings.TrimPrefix(m.Channel, b.keys.channel("")), m.Payload)
				if err != nil {
					b.log.Warn().Err(err).Str("channel", m.Channel).Msg("mensaje de difusión ilegible")
					continue
				}
				select {
				case out <- msg:
				default:
					b.log.Warn().Str("channel", msg.Channel).Msg("suscriptor lento; mensaje descartado")
				}
			}
		}
	}()
	return out, cancel, nil
}
