package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/DailyBooks-api/internal/application/auth"
	"github.com/jhoicas/DailyBooks-api/internal/application/dto"
	"github.com/jhoicas/DailyBooks-api/internal/application/workspace"
	"github.com/jhoicas/DailyBooks-api/pkg/jwt"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
)

// SessionHandler login, logout y estado de la sesión del workspace.
type SessionHandler struct {
	workspaces *workspace.Manager
	jwtSecret  string
	jwtIssuer  string
	log        *logger.Logger
}

// NewSessionHandler construye el handler.
func NewSessionHandler(workspaces *workspace.Manager, jwtSecret, jwtIssuer string, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		workspaces: workspaces,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		log:        logger.OrNop(log).Component("http.session"),
	}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Administradores con identifier/password, vendedores con PIN de 4 dígitos.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.LoginResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Role) == "" {
		return validation(c, "role es requerido")
	}

	ws := h.workspaces.Open()
	res := ws.Login(c.Context(), auth.Credentials{
		Role:       in.Role,
		Identifier: in.Identifier,
		Password:   in.Password,
		Pin:        in.Pin,
	}, in.ShopID)
	if !res.Success {
		h.workspaces.Discard(ws.ID())
		return c.Status(fiber.StatusUnauthorized).JSON(dto.LoginResponse{Success: false, Message: res.Message})
	}

	snap := ws.Snapshot()
	token, err := jwt.Generate(h.jwtSecret, h.jwtIssuer, jwt.SessionClaims{
		WorkspaceID: ws.ID(),
		UserID:      snap.User.ID,
		ShopID:      snap.ActiveShopID,
		Role:        res.Role,
		ExpiresAt:   res.Session.ExpiresAt,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("no se pudo firmar el token de sesión")
		_ = ws.Logout(c.Context())
		h.workspaces.Discard(ws.ID())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo iniciar sesión"})
	}
	exp := res.Session.ExpiresAt
	return c.JSON(dto.LoginResponse{
		Success:   true,
		Role:      res.Role,
		Token:     token,
		ExpiresAt: &exp,
	})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      204
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	if err := ws.Logout(c.Context()); err != nil {
		h.log.Warn().Err(err).Str("workspace_id", ws.ID()).Msg("logout: no se pudo borrar la sesión")
	}
	h.workspaces.Discard(ws.ID())
	return c.SendStatus(fiber.StatusNoContent)
}

// Get godoc
// @Summary      Estado de la sesión
// @Description  Usuario, rol, tienda activa, tiendas visibles, configuración e indicadores derivados.
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(toSessionResponse(GetWorkspace(c).Snapshot()))
}

// SetActiveShop godoc
// @Summary      Cambiar la tienda activa
// @Tags         session
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetActiveShopRequest  true  "shop_id"
// @Success      200   {object}  dto.SessionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/session/active-shop [put]
func (h *SessionHandler) SetActiveShop(c *fiber.Ctx) error {
	var in dto.SetActiveShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ShopID == "" {
		return validation(c, "shop_id es requerido")
	}
	ws := GetWorkspace(c)
	if err := ws.SetActiveShop(c.Context(), in.ShopID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSessionResponse(ws.Snapshot()))
}
