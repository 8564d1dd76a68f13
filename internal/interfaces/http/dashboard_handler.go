package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/DailyBooks-api/internal/application/analytics"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
)

// DashboardHandler resumen de la tienda activa.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen de la tienda activa
// @Description  Ingresos, gastos y nómina del día y del mes en curso, más el personal en línea.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ShopDashboardDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return writeError(c, domain.ErrNoActiveShop)
	}
	summary, err := h.uc.GetSummary(c.Context(), shopID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
