package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// RowStore
// ──────────────────────────────────────────────────────────────────────────────

func TestRowStore_InsertGeneraIDYFecha(t *testing.T) {
	s := memory.NewRowStore(memory.DefaultSchemas())
	ctx := context.Background()

	row, err := s.Insert(ctx, schema.TableShops, schema.Row{"name": "Centro"})
	require.NoError(t, err)
	assert.NotEmpty(t, row["id"])
	assert.IsType(t, time.Time{}, row["created_at"])
	assert.Len(t, s.Rows(schema.TableShops), 1)
}

func TestRowStore_ColumnaInexistente(t *testing.T) {
	s := memory.NewRowStore(memory.DefaultSchemas())
	ctx := context.Background()

	_, err := s.Insert(ctx, schema.TableProfiles, schema.Row{"name": "Ana", "passcode": "1234"})
	assert.ErrorIs(t, err, domain.ErrUndefinedColumn)

	_, err = s.Select(ctx, schema.TableProfiles, repository.Query{Filters: []repository.Filter{repository.Eq("pin_code", "1234")}})
	assert.ErrorIs(t, err, domain.ErrUndefinedColumn)

	_, err = s.Select(ctx, schema.TableProfiles, repository.Query{OrderBy: "salesman_number"})
	assert.ErrorIs(t, err, domain.ErrUndefinedColumn)
}

func TestRowStore_SelectFiltraOrdenaYLimita(t *testing.T) {
	s := memory.NewRowStore(memory.DefaultSchemas())
	s.Seed(schema.TableProfiles,
		schema.Row{"id": "1", "shop_id": "A", "name": "Carla", "salesmanNumber": 3},
		schema.Row{"id": "2", "shop_id": "A", "name": "Ana", "salesmanNumber": 1},
		schema.Row{"id": "3", "shop_id": "B", "name": "Beto", "salesmanNumber": 2},
	)

	rows, err := s.Select(context.Background(), schema.TableProfiles, repository.Query{
		Filters: []repository.Filter{repository.Eq("shop_id", "A")},
		OrderBy: "salesmanNumber",
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[0]["id"])
	assert.Equal(t, "1", rows[1]["id"])

	rows, err = s.Select(context.Background(), schema.TableProfiles, repository.Query{OrderBy: "salesmanNumber", Desc: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["id"])
}

func TestRowStore_UpdateYDeleteDevuelvenFilasAfectadas(t *testing.T) {
	s := memory.NewRowStore(memory.DefaultSchemas())
	s.Seed(schema.TableProfiles,
		schema.Row{"id": "1", "shop_id": "A", "name": "Ana"},
		schema.Row{"id": "2", "shop_id": "A", "name": "Beto"},
	)
	ctx := context.Background()

	n, err := s.Update(ctx, schema.TableProfiles, []repository.Filter{repository.Eq("shop_id", "A")}, schema.Row{"active": false})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.Delete(ctx, schema.TableProfiles, []repository.Filter{repository.Eq("id", "1")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.Delete(ctx, schema.TableProfiles, []repository.Filter{repository.Eq("id", "1")})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
	assert.Len(t, s.Rows(schema.TableProfiles), 1)
}

func TestRowStore_FailNextSoloAfectaUnaLlamada(t *testing.T) {
	s := memory.NewRowStore(memory.DefaultSchemas())
	boom := errors.New("caído")
	s.FailNext(memory.OpInsert, schema.TableShops, boom)
	ctx := context.Background()

	_, err := s.Insert(ctx, schema.TableShops, schema.Row{"name": "Centro"})
	assert.ErrorIs(t, err, boom)

	_, err = s.Insert(ctx, schema.TableShops, schema.Row{"name": "Centro"})
	assert.NoError(t, err)

	calls := s.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, memory.OpInsert, calls[0].Op)
	s.ResetCalls()
	assert.Empty(t, s.Calls())
}

// ──────────────────────────────────────────────────────────────────────────────
// SessionStore / OverrideStore / Hub
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionStore_GuardarCargarBorrar(t *testing.T) {
	s := memory.NewSessionStore()
	ctx := context.Background()

	got, err := s.Load(ctx, "ws")
	require.NoError(t, err)
	assert.Nil(t, got)

	sess := entity.Session{Role: "admin", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.Save(ctx, "ws", sess))
	got, err = s.Load(ctx, "ws")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)

	require.NoError(t, s.Delete(ctx, "ws"))
	got, err = s.Load(ctx, "ws")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOverrideStore_MezclaYPurga(t *testing.T) {
	s := memory.NewOverrideStore()
	ctx := context.Background()
	addr := "Calle 1"
	tax := true

	require.NoError(t, s.SaveShopMeta(ctx, "A", entity.ShopMeta{Address: &addr}))
	require.NoError(t, s.SaveShopMeta(ctx, "A", entity.ShopMeta{BillShowTax: &tax}))
	meta, err := s.ShopMeta(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, meta.Address)
	require.NotNil(t, meta.BillShowTax)
	assert.Equal(t, addr, *meta.Address)

	num := 4
	require.NoError(t, s.SaveSalesmanMeta(ctx, "A", "s1", entity.SalesmanMeta{SalesmanNumber: &num}))
	metas, err := s.SalesmenMeta(ctx, "A")
	require.NoError(t, err)
	assert.Contains(t, metas, "s1")

	require.NoError(t, s.DeleteShop(ctx, "A"))
	meta, err = s.ShopMeta(ctx, "A")
	require.NoError(t, err)
	assert.True(t, meta.IsZero())
	metas, err = s.SalesmenMeta(ctx, "A")
	require.NoError(t, err)
	assert.Empty(t, metas)
}

func TestHub_EntregaPorCanalYCancelaCierra(t *testing.T) {
	h := memory.NewHub()
	ctx := context.Background()

	msgs, cancel, err := h.Subscribe(ctx, ports.ChannelSettings)
	require.NoError(t, err)
	other, cancelOther, err := h.Subscribe(ctx, ports.AttendanceChannel("A"))
	require.NoError(t, err)
	defer cancelOther()

	require.NoError(t, h.Publish(ctx, ports.ChannelSettings, ports.EventSettingsSync, []byte(`{"key":"slowMovingDays","value":10}`)))

	select {
	case m := <-msgs:
		assert.Equal(t, ports.ChannelSettings, m.Channel)
		assert.Equal(t, ports.EventSettingsSync, m.Event)
		assert.JSONEq(t, `{"key":"slowMovingDays","value":10}`, string(m.Payload))
	case <-time.After(time.Second):
		t.Fatal("el mensaje no llegó")
	}
	select {
	case <-other:
		t.Fatal("otro canal no debe recibir el mensaje")
	default:
	}

	cancel()
	_, open := <-msgs
	assert.False(t, open, "cancelar cierra el canal")
}
