package staff_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/DailyBooks-api/internal/application/staff"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/memory"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/remote"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memory.RowStore
	overrides *memory.OverrideStore
	registry  *staff.Registry
}

func newFixture() *fixture {
	store := memory.NewRowStore(memory.DefaultSchemas())
	overrides := memory.NewOverrideStore()
	return &fixture{
		store:     store,
		overrides: overrides,
		registry:  staff.NewRegistry(remote.NewProfileRepository(store, nil), overrides, nil),
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) seedSalesman(id, shopID, pin string, number int) {
	f.store.Seed(schema.TableProfiles, schema.Row{
		"id": id, "name": "Vendedor " + id, "role": "salesman", "shop_id": shopID, "pin": pin,
		"active": true, "salesmanNumber": number,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_PinUsadoEnOtraTienda(t *testing.T) {
	f := newFixture()
	f.seedSalesman("s1", "B", "1234", 1)

	_, err := f.registry.Add(context.Background(), "A", staff.AddSalesmanRequest{Name: "Ana", Pin: "1234"})
	assert.ErrorIs(t, err, domain.ErrPinTaken)

	s, err := f.registry.Add(context.Background(), "A", staff.AddSalesmanRequest{Name: "Ana", Pin: "5678"})
	require.NoError(t, err)
	assert.True(t, s.Persisted)
	assert.Equal(t, "A", s.ShopID)
}

func TestAdd_NumeroSiguienteConOverrides(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedSalesman("s1", "A", "1111", 2)
	require.NoError(t, f.overrides.SaveSalesmanMeta(ctx, "A", "s1", entity.SalesmanMeta{SalesmanNumber: ptr(5)}))

	s, err := f.registry.Add(ctx, "A", staff.AddSalesmanRequest{Name: "Beto", Pin: "2222"})
	require.NoError(t, err)
	assert.Equal(t, 6, s.SalesmanNumber)

	explicit, err := f.registry.Add(ctx, "A", staff.AddSalesmanRequest{Name: "Caro", Pin: "3333", SalesmanNumber: 42})
	require.NoError(t, err)
	assert.Equal(t, 42, explicit.SalesmanNumber)
}

func TestAdd_RespaldoLocalSiFallaLaInsercion(t *testing.T) {
	f := newFixture()
	f.store.FailNext(memory.OpInsert, schema.TableProfiles, errors.New("sin conexión"))

	s, err := f.registry.Add(context.Background(), "A", staff.AddSalesmanRequest{
		Name: "Dani", Pin: "4444", HourlyRate: decimal.NewFromInt(10), CanBulkEdit: true,
	})
	require.NoError(t, err)
	assert.False(t, s.Persisted)
	assert.True(t, s.CanBulkEdit)
	assert.Equal(t, 1, s.SalesmanNumber)
	assert.Empty(t, f.store.Rows(schema.TableProfiles))
}

func TestAdd_Validaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.registry.Add(ctx, "", staff.AddSalesmanRequest{Name: "X", Pin: "1234"})
	assert.ErrorIs(t, err, domain.ErrNoActiveShop)
	_, err = f.registry.Add(ctx, "A", staff.AddSalesmanRequest{Name: "X", Pin: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidPin)
	_, err = f.registry.Add(ctx, "A", staff.AddSalesmanRequest{Name: " ", Pin: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.store.Calls())
}

func TestNextSalesmanNumber(t *testing.T) {
	assert.Equal(t, 1, staff.NextSalesmanNumber(nil, nil))
	list := []entity.Salesman{{SalesmanNumber: 3}, {SalesmanNumber: 1}}
	assert.Equal(t, 4, staff.NextSalesmanNumber(list, nil))
	assert.Equal(t, 8, staff.NextSalesmanNumber(list, map[string]entity.SalesmanMeta{"x": {SalesmanNumber: ptr(7)}}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_SoloMetadatosNoTocaElAlmacenRemoto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedSalesman("s1", "A", "1111", 1)
	f.store.ResetCalls()

	err := f.registry.Update(ctx, "A", "s1", staff.UpdateSalesmanRequest{
		CanEditTransactions: ptr(true),
		CanBulkEdit:         ptr(true),
		SalesmanNumber:      ptr(9),
	})
	require.NoError(t, err)
	assert.Empty(t, f.store.Calls(), "no debe haber consultas de PIN ni escrituras remotas")

	list, err := f.registry.Load(ctx, "A")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 9, list[0].SalesmanNumber)
	assert.True(t, list[0].CanEditTransactions)
	assert.Equal(t, "1111", list[0].Pin)
}

func TestUpdate_PinDuplicadoYPinPropio(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedSalesman("s1", "A", "1111", 1)
	f.seedSalesman("s2", "B", "2222", 1)

	err := f.registry.Update(ctx, "A", "s1", staff.UpdateSalesmanRequest{Pin: ptr("2222")})
	assert.ErrorIs(t, err, domain.ErrPinTaken)

	require.NoError(t, f.registry.Update(ctx, "A", "s1", staff.UpdateSalesmanRequest{Pin: ptr("1111"), Name: ptr("Ana")}))
	require.NoError(t, f.registry.Update(ctx, "A", "s1", staff.UpdateSalesmanRequest{Pin: ptr("3333")}))

	for _, r := range f.store.Rows(schema.TableProfiles) {
		if r["id"] == "s1" {
			assert.Equal(t, "3333", r["pin"])
			assert.Equal(t, "Ana", r["name"])
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Baja
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_AlcanceDeTiendaYPurgaDeMetadatos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedSalesman("s1", "A", "1111", 1)
	require.NoError(t, f.overrides.SaveSalesmanMeta(ctx, "A", "s1", entity.SalesmanMeta{CanBulkEdit: ptr(true)}))

	require.NoError(t, f.registry.Delete(ctx, "B", "s1"))
	assert.Len(t, f.store.Rows(schema.TableProfiles), 1, "otra tienda no borra el perfil")

	require.NoError(t, f.registry.Delete(ctx, "A", "s1"))
	assert.Empty(t, f.store.Rows(schema.TableProfiles))
	metas, err := f.overrides.SalesmenMeta(ctx, "A")
	require.NoError(t, err)
	assert.NotContains(t, metas, "s1")
}
