package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/DailyBooks-api/internal/application/dto"
)

// SettingsHandler configuración compartida entre sesiones.
type SettingsHandler struct{}

// NewSettingsHandler construye el handler.
func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

// Update godoc
// @Summary      Actualizar configuración compartida
// @Description  Claves: slowMovingDays, autoLockEnabled, autoLockTimeout, salesmen. Se difunde por public:settings.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string                    true  "Clave"
// @Param        body  body  dto.UpdateSettingRequest  true  "value"
// @Success      200   {object}  dto.SettingsDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	key := c.Params("key")
	var in dto.UpdateSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Value) == 0 {
		return validation(c, "value es requerido")
	}
	ws := GetWorkspace(c)
	if err := ws.UpdateSetting(c.Context(), key, in.Value); err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSettingsDTO(ws.Snapshot().Settings))
}
