package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/DailyBooks-api/internal/application/dto"
	"github.com/jhoicas/DailyBooks-api/internal/application/staff"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
)

// SalesmanHandler vendedores de la tienda activa.
type SalesmanHandler struct{}

// NewSalesmanHandler construye el handler.
func NewSalesmanHandler() *SalesmanHandler {
	return &SalesmanHandler{}
}

// List godoc
// @Summary      Listar vendedores de la tienda activa
// @Tags         salesmen
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.SalesmanResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/salesmen [get]
func (h *SalesmanHandler) List(c *fiber.Ctx) error {
	list, err := GetWorkspace(c).RefreshSalesmen(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSalesmanResponses(list))
}

// Create godoc
// @Summary      Crear vendedor
// @Description  El PIN debe ser único entre todas las tiendas. persisted=false si el almacén no aceptó el registro.
// @Tags         salesmen
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddSalesmanRequest  true  "Datos del vendedor"
// @Success      201   {object}  dto.SalesmanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/salesmen [post]
func (h *SalesmanHandler) Create(c *fiber.Ctx) error {
	var in dto.AddSalesmanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.Pin == "" {
		return validation(c, "name y pin son requeridos")
	}
	s, err := GetWorkspace(c).AddSalesman(c.Context(), staff.AddSalesmanRequest{
		Name:                in.Name,
		Pin:                 in.Pin,
		Phone:               in.Phone,
		Photo:               in.Photo,
		HourlyRate:          in.HourlyRate,
		SalesmanNumber:      in.SalesmanNumber,
		CanEditTransactions: in.CanEditTransactions,
		CanBulkEdit:         in.CanBulkEdit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSalesmanResponse(*s))
}

// Update godoc
// @Summary      Actualizar vendedor
// @Tags         salesmen
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del vendedor"
// @Param        body  body  dto.UpdateSalesmanRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SalesmanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/salesmen/{id} [patch]
func (h *SalesmanHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateSalesmanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ws := GetWorkspace(c)
	err := ws.UpdateSalesman(c.Context(), id, staff.UpdateSalesmanRequest{
		Name:                in.Name,
		Pin:                 in.Pin,
		Phone:               in.Phone,
		Photo:               in.Photo,
		HourlyRate:          in.HourlyRate,
		Active:              in.Active,
		SalesmanNumber:      in.SalesmanNumber,
		CanEditTransactions: in.CanEditTransactions,
		CanBulkEdit:         in.CanBulkEdit,
	})
	if err != nil {
		return writeError(c, err)
	}
	for _, s := range ws.Snapshot().Salesmen {
		if s.ID == id {
			return c.JSON(toSalesmanResponse(s))
		}
	}
	return writeError(c, domain.ErrNotFound)
}

// Delete godoc
// @Summary      Eliminar vendedor
// @Tags         salesmen
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vendedor"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/salesmen/{id} [delete]
func (h *SalesmanHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := GetWorkspace(c).DeleteSalesman(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id, Deleted: true})
}
