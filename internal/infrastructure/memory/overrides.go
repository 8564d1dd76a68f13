package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
)

var _ repository.OverrideStore = (*OverrideStore)(nil)

// OverrideStore overrides locales en memoria del proceso.
type OverrideStore struct {
	mu       sync.RWMutex
	shops    map[string]entity.ShopMeta
	salesmen map[string]map[string]entity.SalesmanMeta // shopID → salesmanID → meta
}

// NewOverrideStore construye el almacén vacío.
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{
		shops:    make(map[string]entity.ShopMeta),
		salesmen: make(map[string]map[string]entity.SalesmanMeta),
	}
}

func (s *OverrideStore) ShopMeta(_ context.Context, shopID string) (entity.ShopMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shops[shopID], nil
}

func (s *OverrideStore) SaveShopMeta(_ context.Context, shopID string, meta entity.ShopMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shops[shopID] = s.shops[shopID].Merge(meta)
	return nil
}

func (s *OverrideStore) DeleteShop(_ context.Context, shopID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.shops, shopID)
	delete(s.salesmen, shopID)
	return nil
}

func (s *OverrideStore) SalesmenMeta(_ context.Context, shopID string) (map[string]entity.SalesmanMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]entity.SalesmanMeta, len(s.salesmen[shopID]))
	for id, m := range s.salesmen[shopID] {
		out[id] = m
	}
	return out, nil
}

func (s *OverrideStore) SaveSalesmanMeta(_ context.Context, shopID, salesmanID string, meta entity.SalesmanMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byShop, ok := s.salesmen[shopID]
	if !ok {
		byShop = make(map[string]entity.SalesmanMeta)
		s.salesmen[shopID] = byShop
	}
	byShop[salesmanID] = byShop[salesmanID].Merge(meta)
	return nil
}

func (s *OverrideStore) DeleteSalesmanMeta(_ context.Context, shopID, salesmanID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.salesmen[shopID], salesmanID)
	return nil
}
