package schema_test

import (
	"testing"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Lectura por alias
// ──────────────────────────────────────────────────────────────────────────────

func TestRow_LookupRecorreAliasYSaltaVacios(t *testing.T) {
	r := schema.Row{"pin": "  ", "passcode": nil, "pin_code": "4321"}
	assert.Equal(t, "4321", r.String(schema.FieldPin))

	shop := schema.Row{"contact_phone": "3001234567"}
	assert.Equal(t, "3001234567", shop.String(schema.FieldTelephone))
	assert.False(t, shop.Has(schema.FieldAddress))
	assert.Equal(t, "", shop.String(schema.FieldAddress))
}

func TestRow_ConversionesTolerantes(t *testing.T) {
	r := schema.Row{
		"active":         "false",
		"is_online":      1,
		"hourlyRate":     "12.50",
		"salesmanNumber": 3.0,
		"created_at":     "2024-03-01T08:30:00Z",
		"date":           "2024-03-01",
	}
	assert.False(t, r.Bool(schema.FieldActive, true))
	assert.True(t, r.Bool(schema.FieldIsOnline, false))
	assert.True(t, decimal.RequireFromString("12.5").Equal(r.Decimal(schema.FieldHourlyRate)))
	assert.Equal(t, 3, r.Int(schema.FieldSalesmanNumber))
	assert.True(t, time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC).Equal(r.Time(schema.FieldCreatedAt)))
	assert.True(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Equal(r.Time(schema.FieldDate)))

	bad := schema.Row{"hourlyRate": "n/a", "active": "quizá", "created_at": "ayer"}
	assert.True(t, bad.Decimal(schema.FieldHourlyRate).IsZero())
	assert.True(t, bad.Bool(schema.FieldActive, true))
	assert.True(t, bad.Time(schema.FieldCreatedAt).IsZero())
}

func TestRow_WithoutNoModificaOriginal(t *testing.T) {
	r := schema.Row{"id": "1", "pin": "1234"}
	out := r.Without("pin")
	assert.NotContains(t, out, "pin")
	assert.Contains(t, r, "pin")
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{
		"SuperAdmin":  entity.RoleSuperAdmin,
		"super_admin": entity.RoleSuperAdmin,
		"superuser":   entity.RoleSuperUser,
		"Owner":       entity.RoleAdmin,
		"shop-admin":  entity.RoleAdmin,
		"staff":       entity.RoleSalesman,
		"Worker":      entity.RoleSalesman,
		"cliente":     "",
		"":            "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, schema.NormalizeRole(raw), raw)
	}
}

func TestFoldIdentifier(t *testing.T) {
	assert.Equal(t, schema.FoldIdentifier("  Ana@Tienda.COM "), schema.FoldIdentifier("ana@tienda.com"))
}

func TestProfileFromRow_ActivoPorDefecto(t *testing.T) {
	u := schema.ProfileFromRow(schema.Row{
		"id":          "u1",
		"full_name":   "Ana",
		"role":        "staff",
		"passcode":    "1111",
		"hourly_rate": "8000",
		"shopId":      "A",
	})
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, entity.RoleSalesman, u.Role)
	assert.Equal(t, "1111", u.Pin)
	assert.Equal(t, "A", u.ShopID)
	assert.True(t, u.Active)
	assert.False(t, u.IsOnline)
	assert.True(t, decimal.NewFromInt(8000).Equal(u.HourlyRate))
}

func TestAttendanceFromRow_TipoEnMayusculas(t *testing.T) {
	l := schema.AttendanceFromRow(schema.Row{"id": "a1", "worker_id": "u1", "type": "in", "created_at": "2024-03-01T08:00:00Z"})
	assert.Equal(t, "IN", l.Type)
	assert.Equal(t, "u1", l.UserID)
	assert.False(t, l.Timestamp.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestProfilePatch_ExcluyePin(t *testing.T) {
	pin := "2222"
	name := "Beto"
	active := false
	p := schema.ProfilePatch{Pin: &pin, Name: &name, Active: &active}

	row := p.Row()
	assert.Equal(t, "Beto", row["name"])
	assert.Equal(t, false, row["active"])
	for _, col := range schema.Columns(schema.FieldPin) {
		assert.NotContains(t, row, col)
	}
	assert.False(t, p.IsZero())
	assert.True(t, schema.ProfilePatch{}.IsZero())
	assert.False(t, schema.ProfilePatch{Pin: &pin}.IsZero())
}

func TestProfileInsert_OmiteOpcionalesVacios(t *testing.T) {
	row := schema.ProfileInsert{ID: "u1", Name: "Ana", Role: entity.RoleSalesman, Pin: "1111", Active: true, ShopID: "A"}.Row()
	assert.Equal(t, "1111", row["pin"])
	assert.Equal(t, false, row["is_online"])
	assert.NotContains(t, row, "email")
	assert.NotContains(t, row, "phone")
}

func TestColumn_PrimerAliasEsCanonico(t *testing.T) {
	assert.Equal(t, "telephone", schema.Column(schema.FieldTelephone))
	assert.Len(t, schema.Columns(schema.FieldTelephone), 8)
	require.Equal(t, "sin_alias", schema.Column(schema.Field("sin_alias")))
}
