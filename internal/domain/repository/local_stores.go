package repository

import (
	"context"

	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
)

// OverrideStore almacén local de metadatos que el esquema remoto no conserva de forma fiable.
// Semántica de mezcla: el override gana sobre el valor remoto. Save hace merge campo a campo.
type OverrideStore interface {
	ShopMeta(ctx context.Context, shopID string) (entity.ShopMeta, error)
	SaveShopMeta(ctx context.Context, shopID string, meta entity.ShopMeta) error
	// DeleteShop purga los metadatos de la tienda y de todos sus vendedores.
	DeleteShop(ctx context.Context, shopID string) error

	SalesmenMeta(ctx context.Context, shopID string) (map[string]entity.SalesmanMeta, error)
	SaveSalesmanMeta(ctx context.Context, shopID, salesmanID string, meta entity.SalesmanMeta) error
	DeleteSalesmanMeta(ctx context.Context, shopID, salesmanID string) error
}

// SessionStore almacena la sesión de cada workspace. Load devuelve (nil, nil) si no existe.
type SessionStore interface {
	Load(ctx context.Context, key string) (*entity.Session, error)
	Save(ctx context.Context, key string, s entity.Session) error
	Delete(ctx context.Context, key string) error
}
