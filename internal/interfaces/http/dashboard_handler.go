package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexwms/warehouse-api/internal/application/analytics"
)

// DashboardHandler lecturas agregadas del panel.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del panel: documentos pendientes, stock y valorización
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	resp, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// WarehouseSummaries godoc
// @Summary      Resumen de stock agregado por bodega
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.WarehouseSummaryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/warehouses [get]
func (h *DashboardHandler) WarehouseSummaries(c *fiber.Ctx) error {
	rows, err := h.uc.GetWarehouseSummaries(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(rows)
}
