package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore sesiones en Redis. La clave vence junto con la sesión.
type SessionStore struct {
	client *redis.Client
	keys   keys
}

// NewSessionStore crea el adaptador de sesiones.
func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	return &SessionStore{client: client, keys: newKeys(prefix)}
}

func (s *SessionStore) Load(ctx context.Context, key string) (*entity.Session, error) {
	raw, err := s.client.Get(ctx, s.keys.session(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess entity.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, key string, sess entity.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, key)
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, s.keys.session(key), raw, ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.keys.session(key)).Err()
}
