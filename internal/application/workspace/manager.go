package workspace

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
)

// Manager registro de workspaces por id. Un workspace que no está en memoria (reinicio del
// proceso, otra instancia) se restaura desde el SessionStore.
type Manager struct {
	deps Deps
	log  *logger.Logger

	mu    sync.Mutex
	items map[string]*Workspace
}

// NewManager construye el registro vacío.
func NewManager(deps Deps) *Manager {
	return &Manager{
		deps:  deps,
		log:   logger.OrNop(deps.Log).Component("workspaces"),
		items: make(map[string]*Workspace),
	}
}

// Open crea y registra un workspace nuevo, sin sesión.
func (m *Manager) Open() *Workspace {
	ws := New(uuid.New().String(), m.deps)
	m.mu.Lock()
	m.items[ws.ID()] = ws
	m.mu.Unlock()
	return ws
}

// Get devuelve el workspace con sesión vigente. ErrNotLoggedIn si no existe o venció.
func (m *Manager) Get(ctx context.Context, id string) (*Workspace, error) {
	if id == "" {
		return nil, domain.ErrNotLoggedIn
	}
	m.mu.Lock()
	ws, ok := m.items[id]
	m.mu.Unlock()
	if ok {
		if !ws.CheckSession(ctx) {
			m.Discard(id)
			return nil, domain.ErrNotLoggedIn
		}
		return ws, nil
	}

	ws = New(id, m.deps)
	if err := ws.Init(ctx); err != nil {
		ws.Close()
		return nil, err
	}
	if !ws.Snapshot().LoggedIn() {
		ws.Close()
		return nil, domain.ErrNotLoggedIn
	}
	m.log.Info().Str("workspace_id", id).Msg("workspace restaurado desde la sesión")

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.items[id]; ok {
		ws.Close()
		return existing, nil
	}
	m.items[id] = ws
	return ws, nil
}

// Discard cierra y olvida el workspace. La sesión guardada no se toca.
func (m *Manager) Discard(id string) {
	m.mu.Lock()
	ws, ok := m.items[id]
	delete(m.items, id)
	m.mu.Unlock()
	if ok {
		ws.Close()
	}
}

// Len cantidad de workspaces en memoria.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close cierra todos los workspaces.
func (m *Manager) Close() {
	m.mu.Lock()
	items := m.items
	m.items = make(map[string]*Workspace)
	m.mu.Unlock()
	for _, ws := range items {
		ws.Close()
	}
}
