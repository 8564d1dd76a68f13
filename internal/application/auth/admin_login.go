package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"golang.org/x/crypto/bcrypt"
)

// AdminLoginUseCase lado servidor de POST /api/auth/admin-login.
type AdminLoginUseCase struct {
	profiles repository.ProfileRepository
}

// NewAdminLoginUseCase construye el caso de uso.
func NewAdminLoginUseCase(profiles repository.ProfileRepository) *AdminLoginUseCase {
	return &AdminLoginUseCase{profiles: profiles}
}

// Login busca el perfil por email y luego por nombre, verifica la contraseña
// (bcrypt; sin hash se compara la columna legada en texto plano) y exige rol de gestión.
func (uc *AdminLoginUseCase) Login(ctx context.Context, identifier, password string) (*entity.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	u, err := uc.profiles.FindByEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if u == nil {
		if u, err = uc.profiles.FindByName(ctx, identifier); err != nil {
			return nil, err
		}
	}
	if u == nil || !passwordMatches(*u, password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !entity.IsAdminLike(u.Role) {
		return nil, domain.ErrRoleNotAllowed
	}
	if !u.Active {
		return nil, domain.ErrInactiveAccount
	}
	return u, nil
}

func passwordMatches(u entity.User, password string) bool {
	if u.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
	}
	if u.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
}

// HashPassword hash bcrypt con el costo por defecto.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// PublicProfile fila de perfil que sale por el endpoint: nunca incluye secretos.
func PublicProfile(u entity.User) schema.Row {
	r := schema.Row{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"role":       u.Role,
		"shop_id":    u.ShopID,
		"active":     u.Active,
		"is_online":  u.IsOnline,
		"hourlyRate": u.HourlyRate.String(),
	}
	if u.Phone != "" {
		r["phone"] = u.Phone
	}
	if u.Photo != "" {
		r["photo"] = u.Photo
	}
	return r
}

var _ ports.AdminAuthenticator = (*InProcessAuthenticator)(nil)

// InProcessAuthenticator valida credenciales en el mismo proceso, sin ida y vuelta HTTP
// (API_BASE_URL vacío).
type InProcessAuthenticator struct {
	uc *AdminLoginUseCase
}

// NewInProcessAuthenticator envuelve el caso de uso como AdminAuthenticator.
func NewInProcessAuthenticator(uc *AdminLoginUseCase) *InProcessAuthenticator {
	return &InProcessAuthenticator{uc: uc}
}

func (a *InProcessAuthenticator) AdminLogin(ctx context.Context, identifier, password string) (schema.Row, error) {
	u, err := a.uc.Login(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	return PublicProfile(*u), nil
}
