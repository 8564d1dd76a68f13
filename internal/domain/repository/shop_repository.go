package repository

import (
	"context"

	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
)

// ShopRepository puerto de persistencia para tiendas (tenants).
type ShopRepository interface {
	List(ctx context.Context) ([]entity.Shop, error)
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	Create(ctx context.Context, shop entity.Shop) (*entity.Shop, error)
	Update(ctx context.Context, id string, patch schema.ShopPatch) error
	// SetTelephone escribe el teléfono en todas las columnas alias que el esquema acepte.
	SetTelephone(ctx context.Context, id, telephone string) error
	Delete(ctx context.Context, id string) error
}

// CascadeRepository borra filas dependientes de una tienda en una tabla.
type CascadeRepository interface {
	DeleteByShop(ctx context.Context, table, shopID string) (int64, error)
}
