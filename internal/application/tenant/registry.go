// Package tenant administra las tiendas (tenants): listado con datos del dueño,
// alta con su administrador, edición y borrado en cascada.
package tenant

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/DailyBooks-api/internal/application/auth"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
)

// CascadeTables tablas dependientes que se limpian al borrar una tienda, en orden.
var CascadeTables = []string{
	schema.TableAttendance,
	schema.TableTransactions,
	schema.TableRepairs,
	schema.TableCategories,
	schema.TableInventory,
	schema.TableProfiles,
}

// Registry registro de tiendas. Sin estado: el estado del cliente vive en el workspace.
type Registry struct {
	shops     repository.ShopRepository
	profiles  repository.ProfileRepository
	cascade   repository.CascadeRepository
	overrides repository.OverrideStore
	log       *logger.Logger
	random    io.Reader
}

// NewRegistry construye el registro de tiendas.
func NewRegistry(
	shops repository.ShopRepository,
	profiles repository.ProfileRepository,
	cascade repository.CascadeRepository,
	overrides repository.OverrideStore,
	log *logger.Logger,
) *Registry {
	return &Registry{
		shops:     shops,
		profiles:  profiles,
		cascade:   cascade,
		overrides: overrides,
		log:       logger.OrNop(log).Component("tenant"),
		random:    rand.Reader,
	}
}

// WithRandom reemplaza la fuente de aleatoriedad de las credenciales (tests).
func (r *Registry) WithRandom(src io.Reader) *Registry {
	r.random = src
	return r
}

func requireGlobalAdmin(role string) error {
	if !entity.IsGlobalAdmin(role) {
		return fmt.Errorf("%w: solo un superadministrador puede gestionar tiendas", domain.ErrForbidden)
	}
	return nil
}

// ── Listado ───────────────────────────────────────────────────────────────────

// List tiendas visibles para el rol. Administradores globales: todas, con email,
// contraseña y perfil del dueño. Usuarios ligados a una tienda: solo la suya; si no se
// puede leer se sintetiza un registro mínimo.
func (r *Registry) List(ctx context.Context, role, boundShopID string) ([]entity.Shop, error) {
	if entity.IsGlobalAdmin(role) {
		return r.listAll(ctx)
	}
	if boundShopID == "" {
		return nil, nil
	}
	shop, err := r.shops.GetByID(ctx, boundShopID)
	if err != nil || shop == nil {
		r.log.Warn().Err(err).Str("shop_id", boundShopID).Msg("tienda no disponible; usando registro mínimo")
		shop = &entity.Shop{ID: boundShopID, Name: "Tienda"}
	}
	r.applyOverrides(ctx, shop)
	return []entity.Shop{*shop}, nil
}

func (r *Registry) listAll(ctx context.Context) ([]entity.Shop, error) {
	shops, err := r.shops.List(ctx)
	if err != nil {
		return nil, err
	}
	owners := map[string]entity.User{}
	admins, err := r.profiles.ListAdmins(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("no se pudieron leer los administradores; tiendas sin datos del dueño")
	}
	for _, a := range admins {
		if a.Role != entity.RoleAdmin || a.ShopID == "" {
			continue
		}
		if _, ok := owners[a.ShopID]; !ok {
			owners[a.ShopID] = a
		}
	}
	for i := range shops {
		if owner, ok := owners[shops[i].ID]; ok {
			if owner.Email != "" {
				shops[i].OwnerEmail = owner.Email
			}
			shops[i].OwnerPassword = owner.Password
			shops[i].OwnerProfileID = owner.ID
		}
		r.applyOverrides(ctx, &shops[i])
	}
	return shops, nil
}

func (r *Registry) applyOverrides(ctx context.Context, shop *entity.Shop) {
	meta, err := r.overrides.ShopMeta(ctx, shop.ID)
	if err != nil {
		r.log.Warn().Err(err).Str("shop_id", shop.ID).Msg("overrides de tienda no disponibles")
		return
	}
	meta.Apply(shop)
}

// SelectActive elige la tienda activa: preferida, luego la actual, luego la primera.
func SelectActive(shops []entity.Shop, preferred, existing string) string {
	has := func(id string) bool {
		if id == "" {
			return false
		}
		for _, s := range shops {
			if s.ID == id {
				return true
			}
		}
		return false
	}
	switch {
	case has(preferred):
		return preferred
	case has(existing):
		return existing
	case len(shops) > 0:
		return shops[0].ID
	default:
		return ""
	}
}

// ── Alta ──────────────────────────────────────────────────────────────────────

// CreateShopRequest datos de una tienda nueva.
type CreateShopRequest struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	Address    string `json:"address"`
	OwnerEmail string `json:"ownerEmail"`
	Telephone  string `json:"telephone"`
}

// Credentials credenciales temporales del dueño. No se envían por ningún canal: el
// llamador las muestra.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Pin      string `json:"pin"`
}

// CreateShopResult tienda creada, su administrador y sus credenciales.
type CreateShopResult struct {
	Shop        entity.Shop
	Admin       entity.User
	Credentials Credentials
}

// Create inserta la tienda y su perfil administrador. Si el perfil falla, la tienda se
// borra para no dejar un tenant huérfano.
func (r *Registry) Create(ctx context.Context, actorRole string, req CreateShopRequest) (*CreateShopResult, error) {
	if err := requireGlobalAdmin(actorRole); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	req.OwnerEmail = strings.TrimSpace(req.OwnerEmail)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: el nombre de la tienda es obligatorio", domain.ErrInvalidInput)
	}
	if req.OwnerEmail == "" {
		return nil, fmt.Errorf("%w: el email del dueño es obligatorio", domain.ErrInvalidInput)
	}
	existing, err := r.profiles.FindByEmail(ctx, req.OwnerEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un perfil con el email %s", domain.ErrConflict, req.OwnerEmail)
	}

	pin, err := RandomPIN(r.random)
	if err != nil {
		return nil, err
	}
	password, err := RandomPassword(r.random)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	shop, err := r.shops.Create(ctx, entity.Shop{
		Name:       req.Name,
		Location:   strings.TrimSpace(req.Location),
		Address:    strings.TrimSpace(req.Address),
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("crear tienda: %w", err)
	}
	log := r.log.With("shop_id", shop.ID)

	admin, err := r.profiles.CreateProfile(ctx, schema.ProfileInsert{
		ID:           uuid.New().String(),
		Name:         "Admin " + shop.Name,
		Email:        req.OwnerEmail,
		Role:         entity.RoleAdmin,
		Pin:          pin,
		Password:     password,
		PasswordHash: hash,
		Active:       true,
		ShopID:       shop.ID,
	})
	if err != nil {
		log.Warn().Err(err).Msg("alta del administrador falló; revirtiendo tienda")
		if rbErr := r.shops.Delete(ctx, shop.ID); rbErr != nil {
			log.Error().Err(rbErr).Msg("no se pudo revertir la tienda huérfana")
			return nil, errors.Join(fmt.Errorf("crear administrador: %w", err), fmt.Errorf("revertir tienda: %w", rbErr))
		}
		return nil, fmt.Errorf("crear administrador: %w", err)
	}

	meta := entity.ShopMeta{}
	if shop.Address == "" && req.Address != "" {
		meta.Address = &req.Address
	}
	if tel := strings.TrimSpace(req.Telephone); tel != "" {
		if err := r.shops.SetTelephone(ctx, shop.ID, tel); err != nil {
			log.Warn().Err(err).Msg("teléfono no persistido en el almacén remoto; se conserva como override")
		}
		shop.Telephone = tel
		meta.Telephone = &tel
	}
	if !meta.IsZero() {
		if err := r.overrides.SaveShopMeta(ctx, shop.ID, meta); err != nil {
			log.Warn().Err(err).Msg("no se guardaron los overrides de la tienda")
		}
		meta.Apply(shop)
	}

	shop.OwnerEmail = req.OwnerEmail
	shop.OwnerPassword = password
	shop.OwnerProfileID = admin.ID
	log.Info().Str("owner_profile_id", admin.ID).Msg("tienda creada")

	return &CreateShopResult{
		Shop:        *shop,
		Admin:       *admin,
		Credentials: Credentials{Email: req.OwnerEmail, Password: password, Pin: pin},
	}, nil
}

// ── Edición ───────────────────────────────────────────────────────────────────

// UpdateShopRequest cambios parciales (nil = sin cambio).
type UpdateShopRequest struct {
	Name          *string `json:"name,omitempty"`
	Location      *string `json:"location,omitempty"`
	Address       *string `json:"address,omitempty"`
	Telephone     *string `json:"telephone,omitempty"`
	BillShowTax   *bool   `json:"billShowTax,omitempty"`
	OwnerEmail    *string `json:"ownerEmail,omitempty"`
	OwnerPassword *string `json:"ownerPassword,omitempty"`
}

// Update actualización parcial. El teléfono se escribe aparte sobre todas sus columnas
// alias; dirección, teléfono y billShowTax quedan además como override local.
func (r *Registry) Update(ctx context.Context, actorRole, shopID string, req UpdateShopRequest) error {
	if err := requireGlobalAdmin(actorRole); err != nil {
		return err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("%w: el nombre de la tienda es obligatorio", domain.ErrInvalidInput)
	}
	log := r.log.With("shop_id", shopID)

	if err := r.shops.Update(ctx, shopID, schema.ShopPatch{
		Name:        req.Name,
		Location:    req.Location,
		Address:     req.Address,
		OwnerEmail:  req.OwnerEmail,
		BillShowTax: req.BillShowTax,
	}); err != nil {
		return fmt.Errorf("actualizar tienda: %w", err)
	}

	if req.Telephone != nil {
		if err := r.shops.SetTelephone(ctx, shopID, *req.Telephone); err != nil {
			log.Warn().Err(err).Msg("teléfono no persistido en el almacén remoto; se conserva como override")
		}
	}

	if req.OwnerEmail != nil || req.OwnerPassword != nil {
		if err := r.updateOwner(ctx, shopID, req.OwnerEmail, req.OwnerPassword); err != nil {
			return err
		}
	}

	meta := entity.ShopMeta{Address: req.Address, Telephone: req.Telephone, BillShowTax: req.BillShowTax}
	if !meta.IsZero() {
		if err := r.overrides.SaveShopMeta(ctx, shopID, meta); err != nil {
			log.Warn().Err(err).Msg("no se guardaron los overrides de la tienda")
		}
	}
	return nil
}

func (r *Registry) updateOwner(ctx context.Context, shopID string, email, password *string) error {
	admins, err := r.profiles.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("buscar dueño: %w", err)
	}
	var owner *entity.User
	for i := range admins {
		if admins[i].Role == entity.RoleAdmin && admins[i].ShopID == shopID {
			owner = &admins[i]
			break
		}
	}
	if owner == nil {
		r.log.Warn().Str("shop_id", shopID).Msg("la tienda no tiene administrador; datos del dueño sin aplicar")
		return nil
	}
	patch := schema.ProfilePatch{Email: email}
	if password != nil {
		if *password == "" {
			return fmt.Errorf("%w: la contraseña no puede estar vacía", domain.ErrInvalidInput)
		}
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return err
		}
		patch.Password = password
		patch.PasswordHash = &hash
	}
	if err := r.profiles.Update(ctx, owner.ID, shopID, patch); err != nil {
		return fmt.Errorf("actualizar dueño: %w", err)
	}
	return nil
}

// ── Borrado ───────────────────────────────────────────────────────────────────

// CascadeStep resultado de limpiar una tabla dependiente.
type CascadeStep struct {
	Table   string `json:"table"`
	Deleted int64  `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// CascadeReport resultado agregado del borrado de una tienda.
type CascadeReport struct {
	ShopID      string        `json:"shopId"`
	Steps       []CascadeStep `json:"steps"`
	ShopDeleted bool          `json:"shopDeleted"`
}

// Failed pasos que no se completaron.
func (r CascadeReport) Failed() []CascadeStep {
	var out []CascadeStep
	for _, s := range r.Steps {
		if s.Error != "" {
			out = append(out, s)
		}
	}
	return out
}

// Partial informa si la tienda se borró pero alguna tabla dependiente quedó sin limpiar.
func (r CascadeReport) Partial() bool {
	return r.ShopDeleted && len(r.Failed()) > 0
}

// Delete borra la tienda: rechaza la última, limpia las tablas dependientes (un fallo se
// registra en el reporte sin abortar), borra la fila y purga los overrides.
func (r *Registry) Delete(ctx context.Context, actorRole, shopID string) (*CascadeReport, error) {
	if err := requireGlobalAdmin(actorRole); err != nil {
		return nil, err
	}
	shops, err := r.shops.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar tiendas: %w", err)
	}
	found := false
	for _, s := range shops {
		if s.ID == shopID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	if len(shops) <= 1 {
		return nil, domain.ErrLastShop
	}

	log := r.log.With("shop_id", shopID)
	report := &CascadeReport{ShopID: shopID}
	for _, table := range CascadeTables {
		n, err := r.cascade.DeleteByShop(ctx, table, shopID)
		step := CascadeStep{Table: table, Deleted: n}
		if err != nil {
			step.Error = err.Error()
			log.Warn().Err(err).Str("table", table).Msg("limpieza en cascada incompleta")
		}
		report.Steps = append(report.Steps, step)
	}

	if err := r.shops.Delete(ctx, shopID); err != nil {
		return report, fmt.Errorf("borrar tienda: %w", err)
	}
	report.ShopDeleted = true

	if err := r.overrides.DeleteShop(ctx, shopID); err != nil {
		log.Warn().Err(err).Msg("no se purgaron los overrides de la tienda")
	}
	log.Info().Int("failed_steps", len(report.Failed())).Msg("tienda eliminada")
	return report, nil
}
