package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

var _ repository.OverrideStore = (*OverrideStore)(nil)

// OverrideStore overrides locales en Redis: un JSON por tienda y un hash por tienda con
// los metadatos de cada vendedor. La mezcla es leer-fusionar-escribir, sin bloqueo:
// la última escritura gana.
type OverrideStore struct {
	client *redis.Client
	keys   keys
}

// NewOverrideStore crea el adaptador de overrides.
func NewOverrideStore(client *redis.Client, prefix string) *OverrideStore {
	return &OverrideStore{client: client, keys: newKeys(prefix)}
}

func (s *OverrideStore) ShopMeta(ctx context.Context, shopID string) (entity.ShopMeta, error) {
	var meta entity.ShopMeta
	raw, err := s.client.Get(ctx, s.keys.shopMeta(shopID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return meta, nil
		}
		return meta, fmt.Errorf("load shop overrides: %w", err)
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return meta, fmt.Errorf("decode shop overrides: %w", err)
	}
	return meta, nil
}

func (s *OverrideStore) SaveShopMeta(ctx context.Context, shopID string, meta entity.ShopMeta) error {
	current, err := s.ShopMeta(ctx, shopID)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(current.Merge(meta))
	if err != nil {
		return fmt.Errorf("encode shop overrides: %w", err)
	}
	return s.client.Set(ctx, s.keys.shopMeta(shopID), raw, 0).Err()
}

func (s *OverrideStore) DeleteShop(ctx context.Context, shopID string) error {
	return s.client.Del(ctx, s.keys.shopMeta(shopID), s.keys.salesmenMeta(shopID)).Err()
}

func (s *OverrideStore) SalesmenMeta(ctx context.Context, shopID string) (map[string]entity.SalesmanMeta, error) {
	fields, err := s.client.HGetAll(ctx, s.keys.salesmenMeta(shopID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load salesmen overrides: %w", err)
	}
	out := make(map[string]entity.SalesmanMeta, len(fields))
	for id, raw := range fields {
		var meta entity.SalesmanMeta
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			return nil, fmt.Errorf("decode salesman overrides %s: %w", id, err)
		}
		out[id] = meta
	}
	return out, nil
}

func (s *OverrideStore) SaveSalesmanMeta(ctx context.Context, shopID, salesmanID string, meta entity.SalesmanMeta) error {
	key := s.keys.salesmenMeta(shopID)
	var current entity.SalesmanMeta
	raw, err := s.client.HGet(ctx, key, salesmanID).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return fmt.Errorf("load salesman overrides: %w", err)
	default:
		if err := json.Unmarshal(raw, &current); err != nil {
			return fmt.Errorf("decode salesman overrides: %w", err)
		}
	}
	merged, err := json.Marshal(current.Merge(meta))
	if err != nil {
		return fmt.Errorf("encode salesman overrides: %w", err)
	}
	return s.client.HSet(ctx, key, salesmanID, merged).Err()
}

func (s *OverrideStore) DeleteSalesmanMeta(ctx context.Context, shopID, salesmanID string) error {
	return s.client.HDel(ctx, s.keys.salesmenMeta(shopID), salesmanID).Err()
}
