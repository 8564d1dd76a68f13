package entity

import "github.com/shopspring/decimal"

// Roles válidos para User.
const (
	RoleSuperAdmin = "superadmin"
	RoleSuperUser  = "superuser"
	RoleAdmin      = "admin"
	RoleSalesman   = "salesman"
)

// IsGlobalAdmin informa si el rol administra tiendas de todos los tenants.
func IsGlobalAdmin(role string) bool {
	return role == RoleSuperAdmin || role == RoleSuperUser
}

// IsAdminLike informa si el rol tiene privilegios de gestión de tienda.
func IsAdminLike(role string) bool {
	return role == RoleAdmin || IsGlobalAdmin(role)
}

// User perfil normalizado (proyección canónica de las filas heterogéneas de profiles).
type User struct {
	ID       string
	Name     string
	Email    string
	Role     string
	Pin      string
	Password string // copia visible que el almacén remoto conserva para el dueño
	// PasswordHash bcrypt; nunca sale de la capa de autenticación.
	PasswordHash string
	Phone        string
	HourlyRate   decimal.Decimal
	Photo        string
	Active       bool
	ShopID       string
	IsOnline     bool
}

// Salesman vendedor de una tienda: perfil + metadatos locales por tienda.
type Salesman struct {
	User
	SalesmanNumber      int
	CanEditTransactions bool
	CanBulkEdit         bool
	// Persisted = false para registros de respaldo que no llegaron al almacén remoto.
	Persisted bool
}

// SalesmanMeta metadatos que el esquema remoto puede no soportar.
// nil = sin override para ese campo.
type SalesmanMeta struct {
	SalesmanNumber      *int  `json:"salesmanNumber,omitempty"`
	CanEditTransactions *bool `json:"canEditTransactions,omitempty"`
	CanBulkEdit         *bool `json:"canBulkEdit,omitempty"`
}

// IsZero informa si no hay ningún override definido.
func (m SalesmanMeta) IsZero() bool {
	return m.SalesmanNumber == nil && m.CanEditTransactions == nil && m.CanBulkEdit == nil
}

// Merge devuelve m con los campos definidos en next sobrescritos.
func (m SalesmanMeta) Merge(next SalesmanMeta) SalesmanMeta {
	if next.SalesmanNumber != nil {
		m.SalesmanNumber = next.SalesmanNumber
	}
	if next.CanEditTransactions != nil {
		m.CanEditTransactions = next.CanEditTransactions
	}
	if next.CanBulkEdit != nil {
		m.CanBulkEdit = next.CanBulkEdit
	}
	return m
}

// Apply superpone el override sobre el vendedor (el override gana).
func (m SalesmanMeta) Apply(s *Salesman) {
	if m.SalesmanNumber != nil {
		s.SalesmanNumber = *m.SalesmanNumber
	}
	if m.CanEditTransactions != nil {
		s.CanEditTransactions = *m.CanEditTransactions
	}
	if m.CanBulkEdit != nil {
		s.CanBulkEdit = *m.CanBulkEdit
	}
}
