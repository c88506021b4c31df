package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/application/stock"
	"github.com/nexwms/warehouse-api/internal/infrastructure/pdf"
)

// ReportHandler reportes PDF imprimibles.
type ReportHandler struct {
	stockUC   *stock.UseCase
	generator *pdf.MarotoReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(stockUC *stock.UseCase, generator *pdf.MarotoReportGenerator) *ReportHandler {
	return &ReportHandler{stockUC: stockUC, generator: generator}
}

// LowStockPDF godoc
// @Summary      Reporte PDF de stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	levels, err := h.stockUC.ListLowStock(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	doc, err := h.generator.GenerateLowStockReport(c.Context(), levels)
	if err != nil {
		return handleError(c, err)
	}
	return sendPDF(c, doc, fmt.Sprintf("stock-bajo-%s.pdf", time.Now().Format("2006-01-02")))
}

// CountSheetPDF godoc
// @Summary      Planilla PDF de conteo físico de una ubicación
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        location_id  path  string  true  "ubicación"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/count-sheet/{location_id} [get]
func (h *ReportHandler) CountSheetPDF(c *fiber.Ctx) error {
	locationID := c.Params("location_id")
	levels, err := h.stockUC.ListByLocation(c.Context(), locationID)
	if err != nil {
		return handleError(c, err)
	}
	if len(levels) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación sin stock registrado"})
	}
	doc, err := h.generator.GenerateCountSheet(c.Context(), levels[0].LocationName, levels)
	if err != nil {
		return handleError(c, err)
	}
	return sendPDF(c, doc, fmt.Sprintf("conteo-%s-%s.pdf", locationID, time.Now().Format("2006-01-02")))
}

func sendPDF(c *fiber.Ctx, doc []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(doc)
}
