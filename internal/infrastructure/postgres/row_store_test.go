package postgres

import (
	"testing"

	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/stretchr/testify/assert"
)

func TestBuildSelect_FiltrosOrdenYLimite(t *testing.T) {
	sql, args := buildSelect("profiles", repository.Query{
		Filters: []repository.Filter{repository.Eq("role", "salesman"), repository.Eq("shop_id", "s1")},
		OrderBy: "salesmanNumber",
		Limit:   10,
	})
	assert.Equal(t, `SELECT * FROM "profiles" WHERE "role" = $1 AND "shop_id" = $2 ORDER BY "salesmanNumber" ASC LIMIT 10`, sql)
	assert.Equal(t, []any{"salesman", "s1"}, args)
}

func TestBuildSelect_SinFiltros(t *testing.T) {
	sql, args := buildSelect("shops", repository.Query{OrderBy: "created_at", Desc: true})
	assert.Equal(t, `SELECT * FROM "shops" ORDER BY "created_at" DESC`, sql)
	assert.Empty(t, args)
}

func TestBuildInsert_ColumnasOrdenadas(t *testing.T) {
	sql, args := buildInsert("shops", schema.Row{"name": "A", "id": "1"})
	assert.Equal(t, `INSERT INTO "shops" ("id", "name") VALUES ($1, $2) RETURNING *`, sql)
	assert.Equal(t, []any{"1", "A"}, args)
}

func TestBuildUpdate_ParametrosDespuesDelSet(t *testing.T) {
	sql, args := buildUpdate("profiles",
		[]repository.Filter{repository.Eq("id", "p1")},
		schema.Row{"is_online": true, "name": "Ana"})
	assert.Equal(t, `UPDATE "profiles" SET "is_online" = $1, "name" = $2 WHERE "id" = $3`, sql)
	assert.Equal(t, []any{true, "Ana", "p1"}, args)
}

func TestBuildDelete_IdentificadoresCitados(t *testing.T) {
	sql, args := buildDelete(`we"ird`, []repository.Filter{repository.Eq("shop_id", "s1")})
	assert.Equal(t, `DELETE FROM "we""ird" WHERE "shop_id" = $1`, sql)
	assert.Equal(t, []any{"s1"}, args)
}
