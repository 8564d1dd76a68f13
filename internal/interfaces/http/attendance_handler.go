package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/DailyBooks-api/internal/application/dto"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
)

// AttendanceHandler marcaciones de la tienda activa.
type AttendanceHandler struct{}

// NewAttendanceHandler construye el handler.
func NewAttendanceHandler() *AttendanceHandler {
	return &AttendanceHandler{}
}

// List godoc
// @Summary      Listar marcaciones de la tienda activa
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.AttendanceLogResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	logs, err := GetWorkspace(c).RefreshAttendance(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toAttendanceResponses(logs))
}

// Punch godoc
// @Summary      Marcar entrada o salida
// @Description  Una salida cierra el turno abierto del día y genera el gasto de nómina.
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PunchRequest  true  "IN | OUT"
// @Success      201   {object}  dto.PunchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/attendance/punch [post]
func (h *AttendanceHandler) Punch(c *fiber.Ctx) error {
	var in dto.PunchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Type == "" {
		return validation(c, "type es requerido (IN | OUT)")
	}
	res, err := GetWorkspace(c).Punch(c.Context(), in.Type)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPunchResponse(res))
}

// Update godoc
// @Summary      Editar marcación
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la marcación"
// @Param        body  body  dto.UpdateAttendanceRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.AttendanceChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/attendance/{id} [patch]
func (h *AttendanceHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateAttendanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := GetWorkspace(c).UpdateAttendance(c.Context(), id, entity.AttendancePatch{
		Type:      in.Type,
		Timestamp: in.Timestamp,
		Note:      in.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AttendanceChangeResponse{ID: id, UserID: res.UserID, Online: res.Online})
}

// Delete godoc
// @Summary      Eliminar marcación
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la marcación"
// @Success      200  {object}  dto.AttendanceChangeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	res, err := GetWorkspace(c).DeleteAttendance(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AttendanceChangeResponse{ID: id, UserID: res.UserID, Online: res.Online})
}
