package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/DailyBooks-api/internal/application/dto"
	"github.com/jhoicas/DailyBooks-api/internal/application/workspace"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/pkg/jwt"
)

// Locals keys cargadas por SessionMiddleware.
const (
	LocalWorkspace = "workspace"
	LocalUserID    = "user_id"
	LocalShopID    = "shop_id"
	LocalRole      = "role"
)

// workspaceSource lo implementa *workspace.Manager.
type workspaceSource interface {
	Get(ctx context.Context, id string) (*workspace.Workspace, error)
}

// SessionMiddleware valida el Bearer Token JWT, recupera el workspace de la sesión y deja
// workspace, usuario, tienda activa y rol en c.Locals.
func SessionMiddleware(jwtSecret string, workspaces workspaceSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		ws, err := workspaces.Get(c.Context(), claims.WorkspaceID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "la sesión venció o no existe"})
		}
		snap := ws.Snapshot()
		c.Locals(LocalWorkspace, ws)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalShopID, snap.ActiveShopID)
		// El rol vigente es el del workspace; el del token solo sirve si aún no hay estado.
		role := snap.Role
		if role == "" {
			role = claims.Role
		}
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Usar después de SessionMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la sesión no tiene rol"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol " + role + " no tiene acceso a este recurso"})
		}
		return c.Next()
	}
}

// RequireAdminLike roles con gestión de tienda.
func RequireAdminLike() fiber.Handler {
	return RequireRole(entity.RoleSuperAdmin, entity.RoleSuperUser, entity.RoleAdmin)
}

// RequireGlobalAdmin roles que administran todas las tiendas.
func RequireGlobalAdmin() fiber.Handler {
	return RequireRole(entity.RoleSuperAdmin, entity.RoleSuperUser)
}

// GetWorkspace devuelve el workspace de la sesión (después de SessionMiddleware).
func GetWorkspace(c *fiber.Ctx) *workspace.Workspace {
	ws, _ := c.Locals(LocalWorkspace).(*workspace.Workspace)
	return ws
}

// GetUserID devuelve el UserID del contexto.
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetShopID devuelve la tienda activa al momento de la petición.
func GetShopID(c *fiber.Ctx) string {
	return localString(c, LocalShopID)
}

// GetRole devuelve el rol de la sesión.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
