package workspace

import (
	"context"

	"github.com/jhoicas/DailyBooks-api/internal/application/tenant"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
)

// RefreshShops recarga las tiendas visibles y elige la activa (preferida, actual, primera).
// Si la tienda activa cambia se recargan sus vendedores y marcaciones.
func (w *Workspace) RefreshShops(ctx context.Context, preferred string) ([]entity.Shop, error) {
	return w.refreshShops(ctx, preferred, false)
}

func (w *Workspace) refreshShops(ctx context.Context, preferred string, force bool) ([]entity.Shop, error) {
	user, role, active, ok := w.current()
	if !ok {
		return nil, domain.ErrNotLoggedIn
	}
	shops, err := w.deps.Shops.List(ctx, role, user.ShopID)
	if err != nil {
		return nil, err
	}
	next := tenant.SelectActive(shops, preferred, active)

	w.mu.Lock()
	w.state.shops = shops
	w.state.activeShopID = next
	w.mu.Unlock()

	if force || next != active {
		w.loadShop(ctx, next)
	}
	return append([]entity.Shop(nil), shops...), nil
}

// loadShop apunta la suscripción de asistencia a la tienda y recarga sus datos.
func (w *Workspace) loadShop(ctx context.Context, shopID string) {
	w.watchAttendance(shopID)
	if shopID == "" {
		w.mu.Lock()
		w.state.salesmen = nil
		w.state.logs = nil
		w.mu.Unlock()
		return
	}
	if _, err := w.RefreshSalesmen(ctx); err != nil {
		w.log.Warn().Err(err).Str("shop_id", shopID).Msg("no se pudieron cargar los vendedores")
	}
	if _, err := w.RefreshAttendance(ctx); err != nil {
		w.log.Warn().Err(err).Str("shop_id", shopID).Msg("no se pudieron cargar las marcaciones")
	}
}

// SetActiveShop cambia la tienda activa. Un usuario ligado a una tienda no puede cambiarla.
func (w *Workspace) SetActiveShop(ctx context.Context, shopID string) error {
	user, role, active, ok := w.current()
	if !ok {
		return domain.ErrNotLoggedIn
	}
	if !entity.IsGlobalAdmin(role) && user.ShopID != shopID {
		return domain.ErrForbidden
	}
	w.mu.Lock()
	found := false
	for _, s := range w.state.shops {
		if s.ID == shopID {
			found = true
			break
		}
	}
	if found {
		w.state.activeShopID = shopID
	}
	w.mu.Unlock()
	if !found {
		return domain.ErrNotFound
	}
	if shopID != active {
		w.loadShop(ctx, shopID)
	}
	return nil
}

// CreateShop crea la tienda con su administrador y recarga el listado.
func (w *Workspace) CreateShop(ctx context.Context, req tenant.CreateShopRequest) (*tenant.CreateShopResult, error) {
	_, role, _, ok := w.current()
	if !ok {
		return nil, domain.ErrNotLoggedIn
	}
	res, err := w.deps.Shops.Create(ctx, role, req)
	if err != nil {
		return nil, err
	}
	if _, err := w.RefreshShops(ctx, ""); err != nil {
		w.log.Warn().Err(err).Msg("tienda creada; no se pudo recargar el listado")
		w.mu.Lock()
		w.state.shops = append(w.state.shops, res.Shop)
		w.mu.Unlock()
	}
	return res, nil
}

// UpdateShop aplica el cambio en el almacén y en la copia local.
func (w *Workspace) UpdateShop(ctx context.Context, shopID string, req tenant.UpdateShopRequest) error {
	_, role, _, ok := w.current()
	if !ok {
		return domain.ErrNotLoggedIn
	}
	if err := w.deps.Shops.Update(ctx, role, shopID, req); err != nil {
		return err
	}
	w.mu.Lock()
	for i := range w.state.shops {
		if w.state.shops[i].ID == shopID {
			applyShopUpdate(&w.state.shops[i], req)
		}
	}
	w.mu.Unlock()
	if _, err := w.RefreshShops(ctx, ""); err != nil {
		w.log.Warn().Err(err).Str("shop_id", shopID).Msg("tienda actualizada; no se pudo recargar el listado")
	}
	return nil
}

func applyShopUpdate(s *entity.Shop, req tenant.UpdateShopRequest) {
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Location != nil {
		s.Location = *req.Location
	}
	if req.Address != nil {
		s.Address = *req.Address
	}
	if req.Telephone != nil {
		s.Telephone = *req.Telephone
	}
	if req.BillShowTax != nil {
		s.BillShowTax = *req.BillShowTax
	}
	if req.OwnerEmail != nil {
		s.OwnerEmail = *req.OwnerEmail
	}
	if req.OwnerPassword != nil {
		s.OwnerPassword = *req.OwnerPassword
	}
}

// DeleteShop borra la tienda en cascada, la quita del listado y reubica la tienda activa
// y el usuario de la sesión si estaban ligados a ella.
func (w *Workspace) DeleteShop(ctx context.Context, shopID string) (*tenant.CascadeReport, error) {
	_, role, _, ok := w.current()
	if !ok {
		return nil, domain.ErrNotLoggedIn
	}
	report, err := w.deps.Shops.Delete(ctx, role, shopID)
	if err != nil {
		return report, err
	}

	w.mu.Lock()
	remaining := make([]entity.Shop, 0, len(w.state.shops))
	for _, s := range w.state.shops {
		if s.ID != shopID {
			remaining = append(remaining, s)
		}
	}
	w.state.shops = remaining
	if w.state.user != nil && w.state.user.ShopID == shopID {
		w.state.user.ShopID = ""
	}
	prev := w.state.activeShopID
	next := tenant.SelectActive(remaining, "", prev)
	w.state.activeShopID = next
	w.mu.Unlock()

	if next != prev {
		w.loadShop(ctx, next)
	}
	if _, err := w.RefreshShops(ctx, ""); err != nil {
		w.log.Warn().Err(err).Msg("tienda eliminada; no se pudo recargar el listado")
	}
	return report, nil
}
