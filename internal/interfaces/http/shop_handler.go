package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/DailyBooks-api/internal/application/dto"
	"github.com/jhoicas/DailyBooks-api/internal/application/tenant"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
)

// ShopHandler tiendas (tenants) visibles para la sesión.
type ShopHandler struct{}

// NewShopHandler construye el handler.
func NewShopHandler() *ShopHandler {
	return &ShopHandler{}
}

// List godoc
// @Summary      Listar tiendas
// @Description  Administradores globales ven todas; el resto solo su tienda.
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ShopResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/shops [get]
func (h *ShopHandler) List(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	shops, err := ws.RefreshShops(c.Context(), "")
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toShopResponses(shops, ws.Snapshot().IsSuperAdmin))
}

// Create godoc
// @Summary      Crear tienda
// @Description  Crea la tienda y su administrador. Las credenciales generadas se devuelven una sola vez.
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShopRequest  true  "Datos de la tienda"
// @Success      201   {object}  dto.CreateShopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.OwnerEmail == "" {
		return validation(c, "name y owner_email son requeridos")
	}
	out, err := GetWorkspace(c).CreateShop(c.Context(), tenant.CreateShopRequest{
		Name:       in.Name,
		Location:   in.Location,
		Address:    in.Address,
		OwnerEmail: in.OwnerEmail,
		Telephone:  in.Telephone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCreateShopResponse(out))
}

// Update godoc
// @Summary      Actualizar tienda
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la tienda"
// @Param        body  body  dto.UpdateShopRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ShopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [patch]
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ws := GetWorkspace(c)
	err := ws.UpdateShop(c.Context(), id, tenant.UpdateShopRequest{
		Name:          in.Name,
		Location:      in.Location,
		Address:       in.Address,
		Telephone:     in.Telephone,
		BillShowTax:   in.BillShowTax,
		OwnerEmail:    in.OwnerEmail,
		OwnerPassword: in.OwnerPassword,
	})
	if err != nil {
		return writeError(c, err)
	}
	snap := ws.Snapshot()
	for _, s := range snap.Shops {
		if s.ID == id {
			return c.JSON(toShopResponse(s, snap.IsSuperAdmin))
		}
	}
	return writeError(c, domain.ErrNotFound)
}

// Delete godoc
// @Summary      Eliminar tienda
// @Description  Borrado en cascada de las tablas dependientes. Rechaza la última tienda.
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.DeleteShopResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [delete]
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	ws := GetWorkspace(c)
	report, err := ws.DeleteShop(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toDeleteShopResponse(report, ws.Snapshot().ActiveShopID))
}
