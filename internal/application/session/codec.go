// Package session convierte un par rol+usuario en una sesión con vencimiento fijo.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
)

// DefaultTTL ventana de validez de una sesión. No hay renovación.
const DefaultTTL = 12 * time.Hour

// Codec sesión de un workspace sobre un SessionStore inyectado.
type Codec struct {
	store repository.SessionStore
	key   string
	ttl   time.Duration
	now   func() time.Time
}

// NewCodec crea el codec para la clave del workspace. ttl <= 0 usa DefaultTTL.
func NewCodec(store repository.SessionStore, key string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{store: store, key: key, ttl: ttl, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Key clave del workspace en el almacén.
func (c *Codec) Key() string { return c.key }

// Create guarda y devuelve una sesión que vence en now + TTL.
func (c *Codec) Create(ctx context.Context, role string, user entity.User) (entity.Session, error) {
	s := entity.Session{
		Role:      role,
		UserID:    user.ID,
		ShopID:    user.ShopID,
		ExpiresAt: c.now().Add(c.ttl),
	}
	if err := c.store.Save(ctx, c.key, s); err != nil {
		return entity.Session{}, fmt.Errorf("guardar sesión: %w", err)
	}
	return s, nil
}

// Current devuelve la sesión vigente o nil. Una sesión vencida se borra del almacén.
func (c *Codec) Current(ctx context.Context) (*entity.Session, error) {
	s, err := c.store.Load(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	if s == nil {
		return nil, nil
	}
	if s.Expired(c.now()) {
		if err := c.store.Delete(ctx, c.key); err != nil {
			return nil, fmt.Errorf("descartar sesión vencida: %w", err)
		}
		return nil, nil
	}
	return s, nil
}

// IsValid informa si hay una sesión vigente. Un error de almacén cuenta como inválida.
func (c *Codec) IsValid(ctx context.Context) bool {
	s, err := c.Current(ctx)
	return err == nil && s != nil
}

// Clear descarta la sesión.
func (c *Codec) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, c.key)
}
