package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
)

// SettingMessage payload de settings_sync en public:settings. Origin identifica al workspace
// emisor, que ignora su propio eco.
type SettingMessage struct {
	Key    string          `json:"key"`
	Value  json.RawMessage `json:"value"`
	Origin string          `json:"origin,omitempty"`
}

// SalesmenSetting valor de la clave salesmen: la lista de vendedores de una tienda, sin
// credenciales.
type SalesmenSetting struct {
	ShopID   string            `json:"shopId"`
	Salesmen []SalesmanMessage `json:"salesmen"`
}

// SalesmanMessage vendedor tal como viaja por el canal de configuración.
type SalesmanMessage struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	ShopID              string `json:"shop_id"`
	Active              bool   `json:"active"`
	IsOnline            bool   `json:"is_online"`
	SalesmanNumber      int    `json:"salesmanNumber"`
	CanEditTransactions bool   `json:"canEditTransactions"`
	CanBulkEdit         bool   `json:"canBulkEdit"`
	Persisted           bool   `json:"persisted"`
}

func toSalesmanMessage(s entity.Salesman) SalesmanMessage {
	return SalesmanMessage{
		ID:                  s.ID,
		Name:                s.Name,
		ShopID:              s.ShopID,
		Active:              s.Active,
		IsOnline:            s.IsOnline,
		SalesmanNumber:      s.SalesmanNumber,
		CanEditTransactions: s.CanEditTransactions,
		CanBulkEdit:         s.CanBulkEdit,
		Persisted:           s.Persisted,
	}
}

func (m SalesmanMessage) applyTo(s *entity.Salesman) {
	s.Name = m.Name
	s.Active = m.Active
	s.IsOnline = m.IsOnline
	s.SalesmanNumber = m.SalesmanNumber
	s.CanEditTransactions = m.CanEditTransactions
	s.CanBulkEdit = m.CanBulkEdit
	s.Persisted = m.Persisted
}

// mergeSalesmen adopta la lista recibida conservando los datos locales que no viajan (PIN,
// teléfono, tarifa) de los vendedores ya conocidos.
func mergeSalesmen(local []entity.Salesman, remote []SalesmanMessage) []entity.Salesman {
	known := make(map[string]entity.Salesman, len(local))
	for _, s := range local {
		known[s.ID] = s
	}
	out := make([]entity.Salesman, 0, len(remote))
	for _, m := range remote {
		s, ok := known[m.ID]
		if !ok {
			s = entity.Salesman{User: entity.User{ID: m.ID, Role: entity.RoleSalesman, ShopID: m.ShopID}}
		}
		m.applyTo(&s)
		out = append(out, s)
	}
	return out
}

// UpdateSetting aplica una configuración compartida y la difunde a las demás sesiones.
func (w *Workspace) UpdateSetting(ctx context.Context, key string, value json.RawMessage) error {
	_, role, _, ok := w.current()
	if !ok {
		return domain.ErrNotLoggedIn
	}
	if !entity.IsAdminLike(role) {
		return domain.ErrForbidden
	}
	w.mu.Lock()
	err := w.applySettingLocked(key, value)
	w.mu.Unlock()
	if err != nil {
		return err
	}
	return w.publishSetting(ctx, key, value)
}

func (w *Workspace) publishSetting(ctx context.Context, key string, value json.RawMessage) error {
	payload, err := json.Marshal(SettingMessage{Key: key, Value: value, Origin: w.id})
	if err != nil {
		return err
	}
	if err := w.deps.Broadcaster.Publish(ctx, ports.ChannelSettings, ports.EventSettingsSync, payload); err != nil {
		return fmt.Errorf("difundir configuración: %w", err)
	}
	return nil
}

// publishSalesmen difunde la lista local de vendedores de la tienda. Best-effort.
func (w *Workspace) publishSalesmen(ctx context.Context, shopID string) {
	w.mu.RLock()
	if w.state.activeShopID != shopID {
		w.mu.RUnlock()
		return
	}
	setting := SalesmenSetting{ShopID: shopID, Salesmen: make([]SalesmanMessage, 0, len(w.state.salesmen))}
	for _, s := range w.state.salesmen {
		setting.Salesmen = append(setting.Salesmen, toSalesmanMessage(s))
	}
	w.mu.RUnlock()

	value, err := json.Marshal(setting)
	if err != nil {
		return
	}
	if err := w.publishSetting(ctx, entity.SettingSalesmen, value); err != nil {
		w.log.Warn().Err(err).Str("shop_id", shopID).Msg("no se difundió la lista de vendedores")
	}
}

func (w *Workspace) applySettingLocked(key string, raw json.RawMessage) error {
	switch key {
	case entity.SettingSlowMovingDays:
		n, err := decodeInt(raw)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s debe ser un entero no negativo", domain.ErrInvalidInput, key)
		}
		w.state.settings.SlowMovingDays = n
	case entity.SettingAutoLockEnabled:
		b, err := decodeBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s debe ser booleano", domain.ErrInvalidInput, key)
		}
		w.state.settings.AutoLockEnabled = b
	case entity.SettingAutoLockTimeout:
		n, err := decodeInt(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s debe ser un entero positivo", domain.ErrInvalidInput, key)
		}
		w.state.settings.AutoLockTimeout = n
	case entity.SettingSalesmen:
		var s SalesmenSetting
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		if s.ShopID != "" && s.ShopID == w.state.activeShopID {
			w.state.salesmen = mergeSalesmen(w.state.salesmen, s.Salesmen)
		}
	default:
		return fmt.Errorf("%w: clave de configuración desconocida %q", domain.ErrInvalidInput, key)
	}
	return nil
}

// decodeInt acepta un número JSON o un número entre comillas.
func decodeInt(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

func decodeBool(raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false, err
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}
