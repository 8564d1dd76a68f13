package remote

import (
	"context"
	"fmt"

	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
)

var (
	_ repository.ShopRepository    = (*ShopRepo)(nil)
	_ repository.CascadeRepository = (*ShopRepo)(nil)
)

var optionalShopColumns = columnsOf(
	schema.FieldLocation, schema.FieldAddress, schema.FieldOwnerEmail, schema.FieldBillShowTax,
)

// ShopRepo implementación de ShopRepository y CascadeRepository sobre el almacén de filas.
type ShopRepo struct {
	store repository.RowStore
}

// NewShopRepository construye el repositorio de tiendas.
func NewShopRepository(store repository.RowStore) *ShopRepo {
	return &ShopRepo{store: store}
}

// List todas las tiendas por fecha de creación.
func (r *ShopRepo) List(ctx context.Context) ([]entity.Shop, error) {
	rows, err := selectOrdered(ctx, r.store, schema.TableShops, nil, false, schema.Columns(schema.FieldCreatedAt)...)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	out := make([]entity.Shop, 0, len(rows))
	for _, row := range rows {
		out = append(out, schema.ShopFromRow(row))
	}
	return out, nil
}

// GetByID obtiene una tienda; (nil, nil) si no existe.
func (r *ShopRepo) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	row, err := selectOne(ctx, r.store, schema.TableShops, byID(id))
	if err != nil {
		return nil, fmt.Errorf("get shop by id: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	s := schema.ShopFromRow(row)
	return &s, nil
}

// Create inserta la tienda. El teléfono no se incluye: el llamador lo escribe con SetTelephone.
func (r *ShopRepo) Create(ctx context.Context, shop entity.Shop) (*entity.Shop, error) {
	row := schema.Row{
		schema.Column(schema.FieldName):        shop.Name,
		schema.Column(schema.FieldLocation):    shop.Location,
		schema.Column(schema.FieldAddress):     shop.Address,
		schema.Column(schema.FieldOwnerEmail):  shop.OwnerEmail,
		schema.Column(schema.FieldBillShowTax): shop.BillShowTax,
	}
	if shop.ID != "" {
		row[schema.Column(schema.FieldID)] = shop.ID
	}
	stored, err := insertAttempts(ctx, r.store, schema.TableShops, row, row.Without(optionalShopColumns...))
	if err != nil {
		return nil, fmt.Errorf("insert shop: %w", err)
	}
	created := schema.ShopFromRow(stored)
	return &created, nil
}

// Update actualización parcial; columnas opcionales inexistentes se omiten.
func (r *ShopRepo) Update(ctx context.Context, id string, patch schema.ShopPatch) error {
	row := patch.Row()
	if row.IsEmpty() {
		return nil
	}
	n, err := updateAttempts(ctx, r.store, schema.TableShops, byID(id), row, row.Without(optionalShopColumns...))
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetTelephone escribe el teléfono en cada columna alias que el esquema acepte.
func (r *ShopRepo) SetTelephone(ctx context.Context, id, telephone string) error {
	written, n, err := writeAliases(ctx, r.store, schema.TableShops, byID(id), schema.FieldTelephone, telephone)
	if err != nil {
		return fmt.Errorf("set shop telephone: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("set shop telephone: %w", domain.ErrUndefinedColumn)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la fila de la tienda.
func (r *ShopRepo) Delete(ctx context.Context, id string) error {
	n, err := r.store.Delete(ctx, schema.TableShops, byID(id))
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByShop borra las filas de table que pertenecen a la tienda.
func (r *ShopRepo) DeleteByShop(ctx context.Context, table, shopID string) (int64, error) {
	var lastErr error
	for _, col := range schema.Columns(schema.FieldShopID) {
		n, err := r.store.Delete(ctx, table, []repository.Filter{repository.Eq(col, shopID)})
		if err == nil {
			return n, nil
		}
		if !isUndefinedColumn(err) {
			return 0, fmt.Errorf("delete %s by shop: %w", table, err)
		}
		lastErr = err
	}
	return 0, fmt.Errorf("delete %s by shop: %w", table, lastErr)
}
