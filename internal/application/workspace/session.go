package workspace

import (
	"context"
	"fmt"

	"github.com/jhoicas/DailyBooks-api/internal/application/auth"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
)

// LoginResult resultado de Login. Nunca se propaga un error: Success=false lleva el mensaje
// para el usuario.
type LoginResult struct {
	Success bool
	Message string
	Role    string
	Session *entity.Session
}

// Init restaura el estado desde la sesión guardada (arranque del cliente o reinicio del
// proceso). Sin sesión vigente el workspace queda vacío y sin error.
func (w *Workspace) Init(ctx context.Context) error {
	w.subscribeSettings()
	s, err := w.codec.Current(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		w.reset()
		return nil
	}
	user, err := w.deps.Profiles.GetByID(ctx, s.UserID)
	if err != nil {
		return fmt.Errorf("restaurar usuario: %w", err)
	}
	if user == nil || !user.Active {
		w.log.Warn().Str("user_id", s.UserID).Msg("usuario de la sesión inexistente o inactivo; sesión descartada")
		if err := w.codec.Clear(ctx); err != nil {
			w.log.Warn().Err(err).Msg("no se pudo descartar la sesión")
		}
		w.reset()
		return domain.ErrNotLoggedIn
	}
	user.Role = s.Role
	if user.ShopID == "" {
		user.ShopID = s.ShopID
	}

	w.mu.Lock()
	w.resetLocked()
	w.state.role = s.Role
	w.state.user = user
	w.state.session = s
	w.state.activeShopID = s.ShopID
	w.mu.Unlock()

	w.afterLogin(ctx, s.ShopID)
	return nil
}

// Login resuelve la identidad, guarda la sesión y carga tiendas, vendedores y marcaciones.
// selectedShopID es la tienda elegida antes del login (acota la búsqueda por PIN).
func (w *Workspace) Login(ctx context.Context, creds auth.Credentials, selectedShopID string) LoginResult {
	identity, err := w.deps.Resolver.Resolve(ctx, creds, selectedShopID)
	if err != nil {
		w.log.Info().Err(err).Str("role", creds.Role).Msg("login rechazado")
		return LoginResult{Message: auth.Message(err)}
	}
	user := identity.User
	user.Role = identity.Role
	user.ShopID = identity.ShopID

	s, err := w.codec.Create(ctx, identity.Role, user)
	if err != nil {
		w.log.Error().Err(err).Msg("no se pudo guardar la sesión")
		return LoginResult{Message: auth.Message(err)}
	}

	w.mu.Lock()
	w.resetLocked()
	w.state.role = identity.Role
	w.state.user = &user
	w.state.session = &s
	w.state.activeShopID = identity.ShopID
	w.mu.Unlock()

	w.subscribeSettings()
	preferred := identity.ShopID
	if preferred == "" {
		preferred = selectedShopID
	}
	w.afterLogin(ctx, preferred)
	w.log.Info().Str("user_id", user.ID).Str("role", identity.Role).Msg("sesión iniciada")
	return LoginResult{Success: true, Role: identity.Role, Session: &s}
}

// afterLogin carga tiendas y los datos de la tienda activa. Los fallos quedan en el log:
// la sesión sigue siendo válida con estado parcial.
func (w *Workspace) afterLogin(ctx context.Context, preferred string) {
	if _, err := w.refreshShops(ctx, preferred, true); err != nil {
		w.log.Warn().Err(err).Msg("no se pudieron cargar las tiendas")
		_, _, active, _ := w.current()
		w.loadShop(ctx, active)
	}
}

// Logout descarta la sesión y limpia el estado.
func (w *Workspace) Logout(ctx context.Context) error {
	err := w.codec.Clear(ctx)
	w.reset()
	if err != nil {
		return fmt.Errorf("cerrar sesión: %w", err)
	}
	return nil
}

// CheckSession informa si la sesión sigue vigente. Una sesión vencida o ausente deja el
// workspace sin rol ni usuario.
func (w *Workspace) CheckSession(ctx context.Context) bool {
	s, err := w.codec.Current(ctx)
	if err != nil {
		w.log.Warn().Err(err).Msg("no se pudo leer la sesión")
		return false
	}
	if s == nil {
		w.reset()
		return false
	}
	w.mu.Lock()
	w.state.session = s
	loggedIn := w.state.user != nil
	w.mu.Unlock()
	return loggedIn
}

func (w *Workspace) reset() {
	w.mu.Lock()
	w.resetLocked()
	w.mu.Unlock()
	w.watchAttendance("")
}
