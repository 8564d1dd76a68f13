// Package auth resuelve la identidad de quien inicia sesión: administradores por
// credenciales contra el endpoint remoto y vendedores por PIN.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// ValidPin informa si el PIN tiene exactamente 4 dígitos.
func ValidPin(pin string) bool {
	return pinPattern.MatchString(pin)
}

// Credentials datos de login. Role "salesman" usa Pin; cualquier otro valor usa
// Identifier (email o nombre) y Password.
type Credentials struct {
	Role       string `json:"role"`
	Identifier string `json:"identifier,omitempty"`
	Password   string `json:"password,omitempty"`
	Pin        string `json:"pin,omitempty"`
}

// IsSalesman informa si las credenciales siguen el camino de vendedor.
func (c Credentials) IsSalesman() bool {
	return schema.NormalizeRole(c.Role) == entity.RoleSalesman
}

// Identity resultado de una resolución exitosa.
type Identity struct {
	Role     string
	User     entity.User
	ShopID   string
	Salesman *entity.Salesman // solo en el camino de vendedor
}

// Resolver autentica administradores y vendedores.
type Resolver struct {
	authn    ports.AdminAuthenticator
	profiles repository.ProfileRepository
	log      *logger.Logger
}

// NewResolver construye el resolvedor de identidad.
func NewResolver(authn ports.AdminAuthenticator, profiles repository.ProfileRepository, log *logger.Logger) *Resolver {
	return &Resolver{authn: authn, profiles: profiles, log: logger.OrNop(log).Component("identity")}
}

// Resolve autentica según el tipo de credencial. selectedShopID acota la búsqueda por PIN
// cuando el cliente ya tiene una tienda elegida.
func (r *Resolver) Resolve(ctx context.Context, creds Credentials, selectedShopID string) (*Identity, error) {
	if creds.IsSalesman() {
		return r.resolveSalesman(ctx, strings.TrimSpace(creds.Pin), selectedShopID)
	}
	return r.resolveAdmin(ctx, strings.TrimSpace(creds.Identifier), creds.Password)
}

func (r *Resolver) resolveAdmin(ctx context.Context, identifier, password string) (*Identity, error) {
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	row, err := r.authn.AdminLogin(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	u := schema.ProfileFromRow(row)
	if !entity.IsAdminLike(u.Role) {
		return nil, domain.ErrRoleNotAllowed
	}
	if u.Role == entity.RoleAdmin && u.ShopID == "" {
		return nil, domain.ErrAdminWithoutShop
	}
	if !u.Active {
		return nil, domain.ErrInactiveAccount
	}
	return &Identity{Role: u.Role, User: u, ShopID: u.ShopID}, nil
}

func (r *Resolver) resolveSalesman(ctx context.Context, pin, selectedShopID string) (*Identity, error) {
	if !ValidPin(pin) {
		return nil, domain.ErrInvalidPin
	}
	matches, err := r.profiles.FindSalesmenByPin(ctx, pin, selectedShopID)
	if err != nil {
		return nil, fmt.Errorf("buscar PIN: %w", err)
	}
	if len(matches) == 0 {
		return nil, domain.ErrPinNotFound
	}
	if selectedShopID == "" && distinctShops(matches) > 1 {
		r.log.Warn().Int("shops", distinctShops(matches)).Msg("PIN presente en varias tiendas sin tienda seleccionada")
		return nil, domain.ErrAmbiguousPin
	}
	if len(matches) > 1 {
		r.log.Warn().Str("shop_id", matches[0].ShopID).Int("salesmen", len(matches)).Msg("PIN repetido dentro de la tienda")
		return nil, domain.ErrDuplicatePin
	}
	m := matches[0]
	if !m.Active {
		return nil, domain.ErrInactiveAccount
	}
	m.Role = entity.RoleSalesman
	return &Identity{Role: entity.RoleSalesman, User: m.User, ShopID: m.ShopID, Salesman: &m}, nil
}

func distinctShops(list []entity.Salesman) int {
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		seen[s.ShopID] = struct{}{}
	}
	return len(seen)
}

// Message texto apto para el usuario final a partir de un error de login.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidPin),
		errors.Is(err, domain.ErrPinNotFound),
		errors.Is(err, domain.ErrAmbiguousPin),
		errors.Is(err, domain.ErrDuplicatePin),
		errors.Is(err, domain.ErrInactiveAccount),
		errors.Is(err, domain.ErrRoleNotAllowed),
		errors.Is(err, domain.ErrAdminWithoutShop):
		return err.Error()
	default:
		return "no se pudo iniciar sesión; intente de nuevo"
	}
}
