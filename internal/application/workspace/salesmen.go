package workspace

import (
	"context"

	"github.com/jhoicas/DailyBooks-api/internal/application/staff"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
)

// manager usuario con privilegios de gestión y tienda activa.
func (w *Workspace) manager() (entity.User, string, error) {
	user, role, shopID, ok := w.current()
	if !ok {
		return entity.User{}, "", domain.ErrNotLoggedIn
	}
	if !entity.IsAdminLike(role) {
		return entity.User{}, "", domain.ErrForbidden
	}
	if shopID == "" {
		return entity.User{}, "", domain.ErrNoActiveShop
	}
	return user, shopID, nil
}

// RefreshSalesmen recarga los vendedores de la tienda activa.
func (w *Workspace) RefreshSalesmen(ctx context.Context) ([]entity.Salesman, error) {
	_, _, shopID, ok := w.current()
	if !ok {
		return nil, domain.ErrNotLoggedIn
	}
	list, err := w.deps.Staff.Load(ctx, shopID)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	if w.state.activeShopID == shopID {
		w.state.salesmen = list
	}
	w.mu.Unlock()
	return append([]entity.Salesman(nil), list...), nil
}

// AddSalesman da de alta un vendedor en la tienda activa. Si el almacén falla el registro
// queda solo en el estado local (Persisted=false).
func (w *Workspace) AddSalesman(ctx context.Context, req staff.AddSalesmanRequest) (*entity.Salesman, error) {
	_, shopID, err := w.manager()
	if err != nil {
		return nil, err
	}
	s, err := w.deps.Staff.Add(ctx, shopID, req)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	if w.state.activeShopID == shopID {
		w.state.salesmen = append(w.state.salesmen, *s)
	}
	w.mu.Unlock()
	w.publishSalesmen(ctx, shopID)
	return s, nil
}

// UpdateSalesman edita un vendedor y refleja el cambio en la lista y, si es el usuario de
// la sesión, en el usuario en vivo.
func (w *Workspace) UpdateSalesman(ctx context.Context, id string, req staff.UpdateSalesmanRequest) error {
	_, shopID, err := w.manager()
	if err != nil {
		return err
	}
	if err := w.deps.Staff.Update(ctx, shopID, id, req); err != nil {
		return err
	}
	w.mu.Lock()
	for i := range w.state.salesmen {
		if w.state.salesmen[i].ID == id {
			req.ApplyTo(&w.state.salesmen[i])
		}
	}
	if w.state.user != nil && w.state.user.ID == id {
		req.ApplyToUser(w.state.user)
	}
	w.mu.Unlock()
	w.publishSalesmen(ctx, shopID)
	return nil
}

// DeleteSalesman borra el vendedor de la tienda activa.
func (w *Workspace) DeleteSalesman(ctx context.Context, id string) error {
	_, shopID, err := w.manager()
	if err != nil {
		return err
	}
	if err := w.deps.Staff.Delete(ctx, shopID, id); err != nil {
		return err
	}
	w.mu.Lock()
	out := w.state.salesmen[:0:0]
	for _, s := range w.state.salesmen {
		if s.ID != id {
			out = append(out, s)
		}
	}
	w.state.salesmen = out
	w.mu.Unlock()
	w.publishSalesmen(ctx, shopID)
	return nil
}
