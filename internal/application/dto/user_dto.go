package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminLoginRequest entrada de POST /api/auth/admin-login. Email se acepta como alias de identifier.
type AdminLoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password" validate:"required"`
}

// AdminLoginResponse sobre {success,data} / {success:false,error:{message}}.
type AdminLoginResponse struct {
	Success bool             `json:"success"`
	Data    map[string]any   `json:"data,omitempty"`
	Error   *AdminLoginError `json:"error,omitempty"`
}

// AdminLoginError detalle del rechazo.
type AdminLoginError struct {
	Message string `json:"message"`
}

// LoginRequest entrada de POST /api/session/login.
type LoginRequest struct {
	Role       string `json:"role" validate:"required,oneof=admin salesman"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Pin        string `json:"pin" validate:"omitempty,len=4,numeric"`
	ShopID     string `json:"shop_id"` // tienda elegida antes del login (opcional)
}

// LoginResponse resultado del login. Success=false lleva Message y ningún token.
type LoginResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message,omitempty"`
	Role      string     `json:"role,omitempty"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// UserResponse perfil de la sesión (sin secretos).
type UserResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email,omitempty"`
	Role       string          `json:"role"`
	Phone      string          `json:"phone,omitempty"`
	Photo      string          `json:"photo,omitempty"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	ShopID     string          `json:"shop_id,omitempty"`
	Active     bool            `json:"active"`
	IsOnline   bool            `json:"is_online"`
}

// SessionResponse estado del workspace (GET /api/session).
type SessionResponse struct {
	Role         string         `json:"role"`
	User         *UserResponse  `json:"user"`
	ActiveShopID string         `json:"active_shop_id"`
	Shops        []ShopResponse `json:"shops"`
	Settings     SettingsDTO    `json:"settings"`
	IsSuperAdmin bool           `json:"is_super_admin"`
	IsAdminLike  bool           `json:"is_admin_like"`
	BillShowTax  bool           `json:"bill_show_tax"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
}

// SetActiveShopRequest entrada de PUT /api/session/active-shop.
type SetActiveShopRequest struct {
	ShopID string `json:"shop_id" validate:"required"`
}

// SettingsDTO configuración sincronizada entre sesiones.
type SettingsDTO struct {
	SlowMovingDays  int  `json:"slowMovingDays"`
	AutoLockEnabled bool `json:"autoLockEnabled"`
	AutoLockTimeout int  `json:"autoLockTimeout"`
}
