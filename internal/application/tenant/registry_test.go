package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/DailyBooks-api/internal/application/auth"
	"github.com/jhoicas/DailyBooks-api/internal/application/tenant"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/memory"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memory.RowStore
	overrides *memory.OverrideStore
	registry  *tenant.Registry
	login     *auth.AdminLoginUseCase
}

func newFixture() *fixture {
	store := memory.NewRowStore(memory.DefaultSchemas())
	overrides := memory.NewOverrideStore()
	shops := remote.NewShopRepository(store)
	profiles := remote.NewProfileRepository(store, nil)
	return &fixture{
		store:     store,
		overrides: overrides,
		registry:  tenant.NewRegistry(shops, profiles, shops, overrides, nil),
		login:     auth.NewAdminLoginUseCase(profiles),
	}
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_TiendaConDuenoQuePuedeIniciarSesion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.registry.Create(ctx, entity.RoleSuperAdmin, tenant.CreateShopRequest{
		Name: "Test Shop", OwnerEmail: "o@x.com", Telephone: "555-1234",
	})
	require.NoError(t, err)
	assert.Len(t, res.Credentials.Pin, 4)
	assert.Len(t, res.Credentials.Password, tenant.PasswordLength)
	assert.Equal(t, res.Admin.ID, res.Shop.OwnerProfileID)

	shops, err := f.registry.List(ctx, entity.RoleSuperAdmin, "")
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, res.Shop.ID, shops[0].ID)
	assert.NotEmpty(t, shops[0].OwnerPassword)
	assert.Equal(t, "o@x.com", shops[0].OwnerEmail)
	assert.Equal(t, "555-1234", shops[0].Telephone)

	u, err := f.login.Login(ctx, "o@x.com", shops[0].OwnerPassword)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, res.Shop.ID, u.ShopID)
}

func TestCreate_RevierteTiendaSiFallaElAdministrador(t *testing.T) {
	f := newFixture()
	f.store.FailNext(memory.OpInsert, schema.TableProfiles, errors.New("conexión perdida"))

	_, err := f.registry.Create(context.Background(), entity.RoleSuperUser, tenant.CreateShopRequest{
		Name: "Huérfana", OwnerEmail: "h@x.com",
	})
	require.Error(t, err)
	assert.Empty(t, f.store.Rows(schema.TableShops), "no debe quedar una tienda huérfana")
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.registry.Create(ctx, entity.RoleSuperAdmin, tenant.CreateShopRequest{OwnerEmail: "o@x.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.registry.Create(ctx, entity.RoleSuperAdmin, tenant.CreateShopRequest{Name: "Sin dueño"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.store.Calls(), "la validación ocurre antes de cualquier llamada remota")
}

func TestPermisos_SoloAdministradorGlobal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.registry.Create(ctx, entity.RoleAdmin, tenant.CreateShopRequest{Name: "X", OwnerEmail: "x@x.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	err = f.registry.Update(ctx, entity.RoleSalesman, "A", tenant.UpdateShopRequest{Name: ptr("Y")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.registry.Delete(ctx, entity.RoleAdmin, "A")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Empty(t, f.store.Calls())
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y selección
// ──────────────────────────────────────────────────────────────────────────────

func TestList_UsuarioLigadoConTiendaInaccesible(t *testing.T) {
	f := newFixture()
	f.store.FailNext(memory.OpSelect, schema.TableShops, errors.New("timeout"))

	shops, err := f.registry.List(context.Background(), entity.RoleSalesman, "A")
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, "A", shops[0].ID)
}

func TestSelectActive(t *testing.T) {
	shops := []entity.Shop{{ID: "A"}, {ID: "B"}}
	assert.Equal(t, "B", tenant.SelectActive(shops, "B", "A"))
	assert.Equal(t, "A", tenant.SelectActive(shops, "Z", "A"))
	assert.Equal(t, "A", tenant.SelectActive(shops, "", "Z"))
	assert.Equal(t, "", tenant.SelectActive(nil, "A", "B"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_TelefonoYOverrides(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.Seed(schema.TableShops, schema.Row{"id": "A", "name": "Centro"})
	f.store.Seed(schema.TableProfiles, schema.Row{"id": "o1", "role": "admin", "shop_id": "A", "email": "o@x.com", "password": "vieja"})

	err := f.registry.Update(ctx, entity.RoleSuperAdmin, "A", tenant.UpdateShopRequest{
		Telephone:     ptr("300-111"),
		BillShowTax:   ptr(true),
		OwnerPassword: ptr("nueva-clave"),
	})
	require.NoError(t, err)

	row := f.store.Rows(schema.TableShops)[0]
	assert.Equal(t, "300-111", row["telephone"])
	assert.Equal(t, "300-111", row["phone"])

	meta, err := f.overrides.ShopMeta(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, meta.BillShowTax)
	assert.True(t, *meta.BillShowTax)

	_, err = f.login.Login(ctx, "o@x.com", "nueva-clave")
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado
// ──────────────────────────────────────────────────────────────────────────────

func seedTwoShops(f *fixture) {
	f.store.Seed(schema.TableShops, schema.Row{"id": "A", "name": "Centro"}, schema.Row{"id": "B", "name": "Norte"})
	f.store.Seed(schema.TableProfiles, schema.Row{"id": "s1", "role": "salesman", "shop_id": "B"})
	f.store.Seed(schema.TableAttendance, schema.Row{"id": "l1", "shop_id": "B"})
	f.store.Seed(schema.TableInventory, schema.Row{"id": "i1", "shop_id": "B"}, schema.Row{"id": "i2", "shop_id": "A"})
}

func TestDelete_UltimaTiendaRechazada(t *testing.T) {
	f := newFixture()
	f.store.Seed(schema.TableShops, schema.Row{"id": "A", "name": "Única"})

	_, err := f.registry.Delete(context.Background(), entity.RoleSuperAdmin, "A")
	assert.ErrorIs(t, err, domain.ErrLastShop)
	assert.Len(t, f.store.Rows(schema.TableShops), 1)
}

func TestDelete_CascadaCompleta(t *testing.T) {
	f := newFixture()
	seedTwoShops(f)
	tax := true
	require.NoError(t, f.overrides.SaveShopMeta(context.Background(), "B", entity.ShopMeta{BillShowTax: &tax}))

	report, err := f.registry.Delete(context.Background(), entity.RoleSuperAdmin, "B")
	require.NoError(t, err)
	assert.True(t, report.ShopDeleted)
	assert.Empty(t, report.Failed())
	assert.Len(t, report.Steps, len(tenant.CascadeTables))

	assert.Len(t, f.store.Rows(schema.TableShops), 1)
	assert.Empty(t, f.store.Rows(schema.TableProfiles))
	assert.Empty(t, f.store.Rows(schema.TableAttendance))
	assert.Len(t, f.store.Rows(schema.TableInventory), 1)

	meta, err := f.overrides.ShopMeta(context.Background(), "B")
	require.NoError(t, err)
	assert.True(t, meta.IsZero())
}

func TestDelete_FalloParcialNoAborta(t *testing.T) {
	f := newFixture()
	seedTwoShops(f)
	f.store.FailNext(memory.OpDelete, schema.TableInventory, errors.New("permiso denegado"))

	report, err := f.registry.Delete(context.Background(), entity.RoleSuperAdmin, "B")
	require.NoError(t, err)
	assert.True(t, report.Partial())
	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, schema.TableInventory, failed[0].Table)
	assert.Empty(t, f.store.Rows(schema.TableProfiles), "las tablas posteriores se limpian igual")
}
