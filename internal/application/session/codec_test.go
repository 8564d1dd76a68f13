package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/application/session"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestCreate_VenceEnDoceHoras(t *testing.T) {
	clk := &clock{t: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	codec := session.NewCodec(memory.NewSessionStore(), "ws1", 0).WithClock(clk.now)

	s, err := codec.Create(context.Background(), entity.RoleAdmin, entity.User{ID: "u1", ShopID: "A"})
	require.NoError(t, err)
	assert.Equal(t, clk.t.Add(12*time.Hour), s.ExpiresAt)
	assert.Equal(t, "A", s.ShopID)
	assert.True(t, codec.IsValid(context.Background()))
}

func TestCurrent_SesionVencidaSeDescarta(t *testing.T) {
	store := memory.NewSessionStore()
	clk := &clock{t: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	codec := session.NewCodec(store, "ws1", time.Hour).WithClock(clk.now)
	ctx := context.Background()

	_, err := codec.Create(ctx, entity.RoleSalesman, entity.User{ID: "s1"})
	require.NoError(t, err)

	clk.t = clk.t.Add(time.Hour + time.Second)
	cur, err := codec.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	stored, err := store.Load(ctx, "ws1")
	require.NoError(t, err)
	assert.Nil(t, stored, "la sesión vencida debe eliminarse del almacén")
}

func TestClear(t *testing.T) {
	codec := session.NewCodec(memory.NewSessionStore(), "ws1", 0)
	ctx := context.Background()
	_, err := codec.Create(ctx, entity.RoleAdmin, entity.User{ID: "u1"})
	require.NoError(t, err)

	require.NoError(t, codec.Clear(ctx))
	assert.False(t, codec.IsValid(ctx))
}
