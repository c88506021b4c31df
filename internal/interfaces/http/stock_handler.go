package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/application/stock"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// StockHandler consultas y mantenimiento de niveles de stock.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listar niveles de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "filtrar por producto"
// @Param        location_id  query  string  false  "filtrar por ubicación"
// @Param        limit        query  int     false  "tamaño de página"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {array}   dto.StockLevelResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	locationID := c.Query("location_id")

	if productID != "" && locationID != "" {
		lvl, err := h.uc.Get(c.Context(), productID, locationID)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(dto.StockLevelFromEntity(lvl))
	}

	var levels []*entity.StockLevel
	var err error
	switch {
	case productID != "":
		levels, err = h.uc.ListByProduct(c.Context(), productID)
	case locationID != "":
		levels, err = h.uc.ListByLocation(c.Context(), locationID)
	default:
		levels, err = h.uc.List(c.Context(), pagination(c))
	}
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.StockLevelsFromEntities(levels))
}

// Get godoc
// @Summary      Nivel de stock de una clave (producto, ubicación)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   path  string  true  "producto"
// @Param        location_id  path  string  true  "ubicación"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{product_id}/{location_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	lvl, err := h.uc.Get(c.Context(), c.Params("product_id"), c.Params("location_id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.StockLevelFromEntity(lvl))
}

// LowStock godoc
// @Summary      Niveles bajo umbral mínimo, ordenados por criticidad
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockLevelResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	levels, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.StockLevelsFromEntities(levels))
}

// UpdateThresholds godoc
// @Summary      Fijar umbrales min/max de una clave de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product_id   path  string  true  "producto"
// @Param        location_id  path  string  true  "ubicación"
// @Param        body  body  dto.UpdateThresholdsRequest  true  "umbrales"
// @Success      200   {object}  dto.StockLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{product_id}/{location_id}/thresholds [put]
func (h *StockHandler) UpdateThresholds(c *fiber.Ctx) error {
	var in dto.UpdateThresholdsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lvl, err := h.uc.UpdateThresholds(c.Context(), c.Params("product_id"), c.Params("location_id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.StockLevelFromEntity(lvl))
}

// Delete godoc
// @Summary      Eliminar un registro de stock en cero
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   path  string  true  "producto"
// @Param        location_id  path  string  true  "ubicación"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/{product_id}/{location_id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("product_id"), c.Params("location_id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Audit godoc
// @Summary      Auditar una clave: stock en mano contra la suma del journal
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   path  string  true  "producto"
// @Param        location_id  path  string  true  "ubicación"
// @Success      200  {object}  dto.StockAuditResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/{product_id}/{location_id}/audit [get]
func (h *StockHandler) Audit(c *fiber.Ctx) error {
	audit, err := h.uc.Audit(c.Context(), c.Params("product_id"), c.Params("location_id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(audit)
}
