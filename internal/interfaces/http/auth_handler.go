package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/DailyBooks-api/internal/application/auth"
	"github.com/jhoicas/DailyBooks-api/internal/application/dto"
)

// AuthHandler endpoint remoto de autenticación de administradores.
type AuthHandler struct {
	uc *auth.AdminLoginUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AdminLoginUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// AdminLogin godoc
// @Summary      Autenticar administrador
// @Description  Verifica identificador (email o nombre) y contraseña. Nunca devuelve el hash.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminLoginRequest  true  "identifier, password"
// @Success      200   {object}  dto.AdminLoginResponse
// @Failure      400   {object}  dto.AdminLoginResponse
// @Failure      401   {object}  dto.AdminLoginResponse
// @Failure      403   {object}  dto.AdminLoginResponse
// @Router       /api/auth/admin-login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(rejected("cuerpo inválido"))
	}
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" {
		identifier = strings.TrimSpace(in.Email)
	}
	if identifier == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(rejected("usuario y contraseña son obligatorios"))
	}
	user, err := h.uc.Login(c.Context(), identifier, in.Password)
	if err != nil {
		status, code := errorStatus(err)
		if code == "INTERNAL" {
			return c.Status(status).JSON(rejected("no se pudo validar las credenciales"))
		}
		return c.Status(status).JSON(rejected(auth.Message(err)))
	}
	return c.JSON(dto.AdminLoginResponse{Success: true, Data: auth.PublicProfile(*user)})
}

func rejected(msg string) dto.AdminLoginResponse {
	return dto.AdminLoginResponse{Success: false, Error: &dto.AdminLoginError{Message: msg}}
}
