// Package staff administra los vendedores de una tienda: perfiles remotos más
// metadatos locales (número, permisos) que el esquema remoto puede no tener.
package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/DailyBooks-api/internal/application/auth"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Registry registro de vendedores. Sin estado propio.
type Registry struct {
	profiles  repository.ProfileRepository
	overrides repository.OverrideStore
	log       *logger.Logger
}

// NewRegistry construye el registro de vendedores.
func NewRegistry(profiles repository.ProfileRepository, overrides repository.OverrideStore, log *logger.Logger) *Registry {
	return &Registry{profiles: profiles, overrides: overrides, log: logger.OrNop(log).Component("staff")}
}

// Load vendedores de la tienda con los metadatos locales superpuestos.
func (r *Registry) Load(ctx context.Context, shopID string) ([]entity.Salesman, error) {
	if shopID == "" {
		return nil, domain.ErrNoActiveShop
	}
	list, err := r.profiles.ListSalesmen(ctx, shopID)
	if err != nil {
		return nil, err
	}
	metas := r.metas(ctx, shopID)
	for i := range list {
		if m, ok := metas[list[i].ID]; ok {
			m.Apply(&list[i])
		}
	}
	return list, nil
}

func (r *Registry) metas(ctx context.Context, shopID string) map[string]entity.SalesmanMeta {
	metas, err := r.overrides.SalesmenMeta(ctx, shopID)
	if err != nil {
		r.log.Warn().Err(err).Str("shop_id", shopID).Msg("metadatos locales de vendedores no disponibles")
		return map[string]entity.SalesmanMeta{}
	}
	return metas
}

// NextSalesmanNumber siguiente número libre: máximo entre valores remotos y overrides + 1.
func NextSalesmanNumber(salesmen []entity.Salesman, metas map[string]entity.SalesmanMeta) int {
	max := 0
	for _, s := range salesmen {
		if s.SalesmanNumber > max {
			max = s.SalesmanNumber
		}
	}
	for _, m := range metas {
		if m.SalesmanNumber != nil && *m.SalesmanNumber > max {
			max = *m.SalesmanNumber
		}
	}
	return max + 1
}

// ── Alta ──────────────────────────────────────────────────────────────────────

// AddSalesmanRequest datos de un vendedor nuevo. SalesmanNumber <= 0 = asignar el siguiente.
type AddSalesmanRequest struct {
	Name                string          `json:"name"`
	Pin                 string          `json:"pin"`
	Phone               string          `json:"phone"`
	Photo               string          `json:"photo"`
	HourlyRate          decimal.Decimal `json:"hourlyRate"`
	SalesmanNumber      int             `json:"salesmanNumber"`
	CanEditTransactions bool            `json:"canEditTransactions"`
	CanBulkEdit         bool            `json:"canBulkEdit"`
}

// Add crea el vendedor. El PIN debe ser único entre todas las tiendas. Si la inserción
// remota falla, devuelve un registro solo en memoria (Persisted = false).
func (r *Registry) Add(ctx context.Context, shopID string, req AddSalesmanRequest) (*entity.Salesman, error) {
	if shopID == "" {
		return nil, domain.ErrNoActiveShop
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Pin = strings.TrimSpace(req.Pin)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: el nombre del vendedor es obligatorio", domain.ErrInvalidInput)
	}
	if !auth.ValidPin(req.Pin) {
		return nil, domain.ErrInvalidPin
	}
	if req.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("%w: la tarifa por hora no puede ser negativa", domain.ErrInvalidInput)
	}
	if err := r.ensurePinFree(ctx, req.Pin, ""); err != nil {
		return nil, err
	}

	number := req.SalesmanNumber
	if number <= 0 {
		metas := r.metas(ctx, shopID)
		current, err := r.profiles.ListSalesmen(ctx, shopID)
		if err != nil {
			r.log.Warn().Err(err).Msg("no se pudo leer la lista remota; numerando solo con overrides")
		}
		number = NextSalesmanNumber(current, metas)
	}
	meta := entity.SalesmanMeta{
		SalesmanNumber:      &number,
		CanEditTransactions: &req.CanEditTransactions,
		CanBulkEdit:         &req.CanBulkEdit,
	}
	insert := schema.ProfileInsert{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Role:       entity.RoleSalesman,
		Pin:        req.Pin,
		Phone:      req.Phone,
		Photo:      req.Photo,
		HourlyRate: req.HourlyRate,
		Active:     true,
		ShopID:     shopID,
	}

	created, err := r.profiles.CreateSalesman(ctx, insert, meta)
	if err != nil {
		r.log.Warn().Err(err).Str("shop_id", shopID).Msg("alta remota de vendedor falló; registro solo local")
		created = &entity.Salesman{
			User: entity.User{
				ID:         insert.ID,
				Name:       insert.Name,
				Role:       entity.RoleSalesman,
				Pin:        insert.Pin,
				Phone:      insert.Phone,
				Photo:      insert.Photo,
				HourlyRate: insert.HourlyRate,
				Active:     true,
				ShopID:     shopID,
			},
			Persisted: false,
		}
		meta.Apply(created)
	}
	if err := r.overrides.SaveSalesmanMeta(ctx, shopID, created.ID, meta); err != nil {
		r.log.Warn().Err(err).Str("salesman_id", created.ID).Msg("no se guardaron los metadatos locales")
	}
	return created, nil
}

// ensurePinFree falla con ErrPinTaken si algún vendedor de cualquier tienda (distinto de
// exceptID) usa el PIN.
func (r *Registry) ensurePinFree(ctx context.Context, pin, exceptID string) error {
	matches, err := r.profiles.FindSalesmenByPin(ctx, pin, "")
	if err != nil {
		return fmt.Errorf("verificar PIN: %w", err)
	}
	for _, m := range matches {
		if m.ID != exceptID {
			return domain.ErrPinTaken
		}
	}
	return nil
}

// ── Edición ───────────────────────────────────────────────────────────────────

// UpdateSalesmanRequest cambios parciales (nil = sin cambio). SalesmanNumber,
// CanEditTransactions y CanBulkEdit son solo locales.
type UpdateSalesmanRequest struct {
	Name                *string          `json:"name,omitempty"`
	Pin                 *string          `json:"pin,omitempty"`
	Phone               *string          `json:"phone,omitempty"`
	Photo               *string          `json:"photo,omitempty"`
	HourlyRate          *decimal.Decimal `json:"hourlyRate,omitempty"`
	Active              *bool            `json:"active,omitempty"`
	SalesmanNumber      *int             `json:"salesmanNumber,omitempty"`
	CanEditTransactions *bool            `json:"canEditTransactions,omitempty"`
	CanBulkEdit         *bool            `json:"canBulkEdit,omitempty"`
}

func (req UpdateSalesmanRequest) remote() schema.ProfilePatch {
	return schema.ProfilePatch{
		Name:       req.Name,
		Pin:        req.Pin,
		Phone:      req.Phone,
		Photo:      req.Photo,
		HourlyRate: req.HourlyRate,
		Active:     req.Active,
	}
}

func (req UpdateSalesmanRequest) local() entity.SalesmanMeta {
	return entity.SalesmanMeta{
		SalesmanNumber:      req.SalesmanNumber,
		CanEditTransactions: req.CanEditTransactions,
		CanBulkEdit:         req.CanBulkEdit,
	}
}

// ApplyTo refleja los cambios en un vendedor ya cargado.
func (req UpdateSalesmanRequest) ApplyTo(s *entity.Salesman) {
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Pin != nil {
		s.Pin = *req.Pin
	}
	if req.Phone != nil {
		s.Phone = *req.Phone
	}
	if req.Photo != nil {
		s.Photo = *req.Photo
	}
	if req.HourlyRate != nil {
		s.HourlyRate = *req.HourlyRate
	}
	if req.Active != nil {
		s.Active = *req.Active
	}
	req.local().Apply(s)
}

// ApplyToUser refleja los cambios remotos en el usuario de la sesión.
func (req UpdateSalesmanRequest) ApplyToUser(u *entity.User) {
	s := entity.Salesman{User: *u}
	req.ApplyTo(&s)
	*u = s.User
}

// Update separa campos remotos y metadatos locales. La unicidad del PIN solo se
// verifica si el PIN cambia; una edición solo de metadatos no toca el almacén remoto.
func (r *Registry) Update(ctx context.Context, shopID, id string, req UpdateSalesmanRequest) error {
	if shopID == "" {
		return domain.ErrNoActiveShop
	}
	patch := req.remote()
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: el nombre del vendedor es obligatorio", domain.ErrInvalidInput)
	}
	if patch.HourlyRate != nil && patch.HourlyRate.IsNegative() {
		return fmt.Errorf("%w: la tarifa por hora no puede ser negativa", domain.ErrInvalidInput)
	}
	if patch.Pin != nil {
		pin := strings.TrimSpace(*patch.Pin)
		if !auth.ValidPin(pin) {
			return domain.ErrInvalidPin
		}
		patch.Pin = &pin
		current, err := r.profiles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current != nil && current.Pin == pin {
			patch.Pin = nil
		} else if err := r.ensurePinFree(ctx, pin, id); err != nil {
			return err
		}
	}

	if !patch.IsZero() {
		if err := r.profiles.Update(ctx, id, shopID, patch); err != nil {
			return fmt.Errorf("actualizar vendedor: %w", err)
		}
	}
	if meta := req.local(); !meta.IsZero() {
		if err := r.overrides.SaveSalesmanMeta(ctx, shopID, id, meta); err != nil {
			return fmt.Errorf("guardar metadatos del vendedor: %w", err)
		}
	}
	return nil
}

// ── Baja ──────────────────────────────────────────────────────────────────────

// Delete borra el perfil en el ámbito de la tienda y purga sus metadatos locales.
// Un registro que nunca llegó al almacén remoto se borra solo localmente.
func (r *Registry) Delete(ctx context.Context, shopID, id string) error {
	if shopID == "" {
		return domain.ErrNoActiveShop
	}
	if err := r.profiles.Delete(ctx, id, shopID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("eliminar vendedor: %w", err)
	}
	if err := r.overrides.DeleteSalesmanMeta(ctx, shopID, id); err != nil {
		r.log.Warn().Err(err).Str("salesman_id", id).Msg("no se purgaron los metadatos locales")
	}
	return nil
}
