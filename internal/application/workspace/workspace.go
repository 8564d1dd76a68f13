// Package workspace es la raíz de composición del lado cliente: cada Workspace mantiene el
// estado reactivo de una sesión (rol, usuario, tienda activa, tiendas, vendedores,
// marcaciones y configuración) y lo sincroniza con el almacén remoto y los canales de difusión.
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/application/attendance"
	"github.com/jhoicas/DailyBooks-api/internal/application/auth"
	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/application/session"
	"github.com/jhoicas/DailyBooks-api/internal/application/staff"
	"github.com/jhoicas/DailyBooks-api/internal/application/tenant"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
)

// Deps colaboradores compartidos por todos los workspaces.
type Deps struct {
	Sessions    repository.SessionStore
	SessionTTL  time.Duration
	Profiles    repository.ProfileRepository
	Resolver    *auth.Resolver
	Shops       *tenant.Registry
	Staff       *staff.Registry
	Attendance  *attendance.Tracker
	Broadcaster ports.Broadcaster
	Log         *logger.Logger
	// Now reloj de la sesión (nil = time.Now).
	Now func() time.Time
}

type state struct {
	role         string
	user         *entity.User
	session      *entity.Session
	activeShopID string
	shops        []entity.Shop
	salesmen     []entity.Salesman
	logs         []entity.AttendanceLog
	settings     entity.Settings
}

func emptyState() state {
	return state{settings: entity.DefaultSettings()}
}

// Workspace estado de un cliente. Las operaciones hacen las llamadas remotas sin tomar el
// lock y aplican el resultado después; los manejadores de difusión corren en sus propias
// goroutines.
type Workspace struct {
	id    string
	deps  Deps
	codec *session.Codec
	log   *logger.Logger

	mu    sync.RWMutex
	state state

	subMu         sync.Mutex
	lifecycle     context.Context
	stop          context.CancelFunc
	settingsSub   func()
	attendanceSub func()
	watchedShop   string
}

// New construye un workspace vacío (sin sesión).
func New(id string, deps Deps) *Workspace {
	codec := session.NewCodec(deps.Sessions, id, deps.SessionTTL)
	if deps.Now != nil {
		codec.WithClock(deps.Now)
	}
	lifecycle, stop := context.WithCancel(context.Background())
	return &Workspace{
		id:        id,
		deps:      deps,
		codec:     codec,
		log:       logger.OrNop(deps.Log).Component("workspace").With("workspace_id", id),
		state:     emptyState(),
		lifecycle: lifecycle,
		stop:      stop,
	}
}

// ID identificador del workspace (clave de su sesión).
func (w *Workspace) ID() string { return w.id }

// Snapshot vista inmutable del estado con los indicadores derivados.
type Snapshot struct {
	Role           string
	User           *entity.User
	Session        *entity.Session
	ActiveShopID   string
	Shops          []entity.Shop
	Salesmen       []entity.Salesman
	AttendanceLogs []entity.AttendanceLog
	Settings       entity.Settings

	IsSuperAdmin bool
	IsAdminLike  bool
	BillShowTax  bool
}

// LoggedIn informa si la vista tiene un usuario con sesión.
func (s Snapshot) LoggedIn() bool { return s.User != nil }

// ActiveShop tienda activa, o nil.
func (s Snapshot) ActiveShop() *entity.Shop {
	for i := range s.Shops {
		if s.Shops[i].ID == s.ActiveShopID {
			return &s.Shops[i]
		}
	}
	return nil
}

// Snapshot copia el estado actual. Los indicadores se calculan en cada lectura.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshotLocked()
}

func (w *Workspace) snapshotLocked() Snapshot {
	st := w.state
	snap := Snapshot{
		Role:           st.role,
		ActiveShopID:   st.activeShopID,
		Shops:          append([]entity.Shop(nil), st.shops...),
		Salesmen:       append([]entity.Salesman(nil), st.salesmen...),
		AttendanceLogs: append([]entity.AttendanceLog(nil), st.logs...),
		Settings:       st.settings,
		IsSuperAdmin:   entity.IsGlobalAdmin(st.role),
		IsAdminLike:    entity.IsAdminLike(st.role),
	}
	if st.user != nil {
		u := *st.user
		snap.User = &u
	}
	if st.session != nil {
		s := *st.session
		snap.Session = &s
	}
	if shop := snap.ActiveShop(); shop != nil {
		snap.BillShowTax = shop.BillShowTax
	}
	return snap
}

func (w *Workspace) resetLocked() {
	settings := w.state.settings
	w.state = emptyState()
	w.state.settings = settings
}

// current usuario, rol y tienda activa; false sin sesión.
func (w *Workspace) current() (entity.User, string, string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.state.user == nil {
		return entity.User{}, "", "", false
	}
	return *w.state.user, w.state.role, w.state.activeShopID, true
}

// Close cancela las suscripciones. El workspace no debe usarse después.
func (w *Workspace) Close() {
	w.stop()
	w.subMu.Lock()
	defer w.subMu.Unlock()
	if w.settingsSub != nil {
		w.settingsSub()
		w.settingsSub = nil
	}
	if w.attendanceSub != nil {
		w.attendanceSub()
		w.attendanceSub = nil
	}
	w.watchedShop = ""
}
