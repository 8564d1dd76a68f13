package remote_test

import (
	"context"
	"testing"

	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/memory"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Perfiles
// ──────────────────────────────────────────────────────────────────────────────

// legacyProfiles esquema antiguo: PIN en "passcode", sin metadatos de vendedor.
func legacyProfiles() map[string][]string {
	s := memory.DefaultSchemas()
	s[schema.TableProfiles] = []string{"id", "shop_id", "role", "name", "email", "passcode", "password", "active", "is_online"}
	return s
}

func TestFindSalesmenByPin_ColumnaAlias(t *testing.T) {
	store := memory.NewRowStore(legacyProfiles())
	store.Seed(schema.TableProfiles,
		schema.Row{"id": "s1", "shop_id": "A", "role": "salesman", "name": "Ana", "passcode": "1234"},
		schema.Row{"id": "s2", "shop_id": "B", "role": "salesman", "name": "Beto", "passcode": "1234"},
	)
	repo := remote.NewProfileRepository(store, nil)

	all, err := repo.FindSalesmenByPin(context.Background(), "1234", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := repo.FindSalesmenByPin(context.Background(), "1234", "B")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "s2", scoped[0].ID)
	assert.Equal(t, "1234", scoped[0].Pin)
}

func TestFindSalesmenByPin_EscaneoCuandoNingunAliasExiste(t *testing.T) {
	s := memory.DefaultSchemas()
	// El PIN vive en una columna que ninguna consulta exacta puede usar: todas fallan por esquema.
	s[schema.TableProfiles] = []string{"id", "shop_id", "role", "name"}
	store := memory.NewRowStore(s)
	store.Seed(schema.TableProfiles,
		schema.Row{"id": "s1", "shop_id": "A", "role": "salesman", "name": "Ana", "pin_code": "4321"},
	)
	repo := remote.NewProfileRepository(store, nil)

	found, err := repo.FindSalesmenByPin(context.Background(), "4321", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "s1", found[0].ID)
}

func TestListSalesmen_OrdenPorCandidatos(t *testing.T) {
	store := memory.NewRowStore(legacyProfiles())
	store.Seed(schema.TableProfiles,
		schema.Row{"id": "b", "shop_id": "A", "role": "salesman", "name": "Zoe"},
		schema.Row{"id": "a", "shop_id": "A", "role": "salesman", "name": "Ana"},
		schema.Row{"id": "x", "shop_id": "A", "role": "admin", "name": "Dueño"},
	)
	repo := remote.NewProfileRepository(store, nil)

	list, err := repo.ListSalesmen(context.Background(), "A")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Sin salesmanNumber ni created_at en el esquema, se ordena por name.
	assert.Equal(t, "Ana", list[0].Name)
	assert.Equal(t, "Zoe", list[1].Name)
}

func TestCreateSalesman_SinColumnasDeMetadatos(t *testing.T) {
	store := memory.NewRowStore(legacyProfiles())
	repo := remote.NewProfileRepository(store, nil)
	n := 7

	s, err := repo.CreateSalesman(context.Background(), schema.ProfileInsert{
		ID: "s9", Name: "Nuevo", Role: entity.RoleSalesman, Pin: "5555", Active: true, ShopID: "A",
	}, entity.SalesmanMeta{SalesmanNumber: &n})
	require.NoError(t, err)
	assert.Equal(t, 7, s.SalesmanNumber, "los metadatos se aplican aunque no se persistan")
	assert.True(t, s.Persisted)

	rows := store.Rows(schema.TableProfiles)
	require.Len(t, rows, 1)
	assert.Equal(t, "5555", rows[0]["passcode"], "el PIN se escribe en la columna alias disponible")
	assert.NotContains(t, rows[0], "salesmanNumber")
}

func TestUpdateProfile_PinPorAliasYAlcance(t *testing.T) {
	store := memory.NewRowStore(legacyProfiles())
	store.Seed(schema.TableProfiles, schema.Row{"id": "s1", "shop_id": "A", "role": "salesman", "passcode": "1111"})
	repo := remote.NewProfileRepository(store, nil)
	pin := "2222"

	err := repo.Update(context.Background(), "s1", "B", schema.ProfilePatch{Pin: &pin})
	assert.ErrorIs(t, err, domain.ErrNotFound, "otra tienda no puede modificar el perfil")

	require.NoError(t, repo.Update(context.Background(), "s1", "A", schema.ProfilePatch{Pin: &pin}))
	assert.Equal(t, "2222", store.Rows(schema.TableProfiles)[0]["passcode"])
}

func TestFindByEmail_SinDistinguirMayusculas(t *testing.T) {
	store := memory.NewRowStore(memory.DefaultSchemas())
	store.Seed(schema.TableProfiles, schema.Row{"id": "p1", "role": "admin", "email": "Owner@Shop.com"})
	repo := remote.NewProfileRepository(store, nil)

	u, err := repo.FindByEmail(context.Background(), "owner@shop.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "p1", u.ID)

	none, err := repo.FindByEmail(context.Background(), "nadie@shop.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tiendas
// ──────────────────────────────────────────────────────────────────────────────

func TestSetTelephone_EscribeTodosLosAlias(t *testing.T) {
	store := memory.NewRowStore(memory.DefaultSchemas())
	store.Seed(schema.TableShops, schema.Row{"id": "A", "name": "Centro"})
	repo := remote.NewShopRepository(store)

	require.NoError(t, repo.SetTelephone(context.Background(), "A", "555-0101"))
	row := store.Rows(schema.TableShops)[0]
	assert.Equal(t, "555-0101", row["telephone"])
	assert.Equal(t, "555-0101", row["phone"])

	assert.ErrorIs(t, repo.SetTelephone(context.Background(), "nope", "1"), domain.ErrNotFound)
}

func TestCreateShop_EsquemaMinimo(t *testing.T) {
	s := memory.DefaultSchemas()
	s[schema.TableShops] = []string{"id", "name", "phone", "created_at"}
	store := memory.NewRowStore(s)
	repo := remote.NewShopRepository(store)

	shop, err := repo.Create(context.Background(), entity.Shop{Name: "Norte", Location: "Av 1"})
	require.NoError(t, err)
	assert.NotEmpty(t, shop.ID)
	assert.Equal(t, "Norte", shop.Name)
	assert.NotContains(t, store.Rows(schema.TableShops)[0], "location")

	require.NoError(t, repo.SetTelephone(context.Background(), shop.ID, "300"))
	assert.Equal(t, "300", store.Rows(schema.TableShops)[0]["phone"])
}

func TestDeleteByShop(t *testing.T) {
	store := memory.NewRowStore(memory.DefaultSchemas())
	store.Seed(schema.TableInventory,
		schema.Row{"id": "1", "shop_id": "A"},
		schema.Row{"id": "2", "shop_id": "A"},
		schema.Row{"id": "3", "shop_id": "B"},
	)
	repo := remote.NewShopRepository(store)

	n, err := repo.DeleteByShop(context.Background(), schema.TableInventory, "A")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Len(t, store.Rows(schema.TableInventory), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asistencia
// ──────────────────────────────────────────────────────────────────────────────

func TestAttendance_EdicionYBorradoAcotadosALaTienda(t *testing.T) {
	store := memory.NewRowStore(memory.DefaultSchemas())
	store.Seed(schema.TableAttendance,
		schema.Row{"id": "b1", "workerId": "w2", "type": "IN", "shop_id": "B"},
	)
	repo := remote.NewAttendanceRepository(store)
	ctx := context.Background()
	out := "OUT"

	err := repo.Update(ctx, "b1", "A", entity.AttendancePatch{Type: &out})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "b1", "A"), domain.ErrNotFound)
	require.Len(t, store.Rows(schema.TableAttendance), 1)

	require.NoError(t, repo.Update(ctx, "b1", "B", entity.AttendancePatch{Type: &out}))
	assert.Equal(t, "OUT", store.Rows(schema.TableAttendance)[0]["type"])
	require.NoError(t, repo.Delete(ctx, "b1", "B"))
	assert.Empty(t, store.Rows(schema.TableAttendance))
}
