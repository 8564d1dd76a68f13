package repository

import (
	"context"

	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
)

// ProfileRepository puerto de persistencia para perfiles (administradores y vendedores).
// Los métodos Get/Find devuelven (nil, nil) cuando no hay coincidencia.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// FindSalesmenByPin busca vendedores por PIN; shopID vacío = todas las tiendas.
	FindSalesmenByPin(ctx context.Context, pin, shopID string) ([]entity.Salesman, error)
	// ListSalesmen lista vendedores de una tienda; shopID vacío = todas las tiendas.
	ListSalesmen(ctx context.Context, shopID string) ([]entity.Salesman, error)
	ListAdmins(ctx context.Context) ([]entity.User, error)
	CreateProfile(ctx context.Context, p schema.ProfileInsert) (*entity.User, error)
	// CreateSalesman inserta el perfil y, si el esquema lo admite, los metadatos.
	CreateSalesman(ctx context.Context, p schema.ProfileInsert, meta entity.SalesmanMeta) (*entity.Salesman, error)
	// Update aplica el patch; shopID no vacío restringe el alcance a esa tienda.
	Update(ctx context.Context, id, shopID string, patch schema.ProfilePatch) error
	Delete(ctx context.Context, id, shopID string) error
}
