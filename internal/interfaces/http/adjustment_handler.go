package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexwms/warehouse-api/internal/application/documents"
	"github.com/nexwms/warehouse-api/internal/application/dto"
)

// AdjustmentHandler ajustes por conteo físico.
type AdjustmentHandler struct {
	uc *documents.AdjustmentUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *documents.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar un ajuste por conteo físico
// @Description  Fija la cantidad en mano de (producto, ubicación) a la
// @Description  cantidad observada; el ledger journaliza la diferencia.
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAdjustmentRequest  true  "ajuste"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.uc.Register(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AdjustmentFromEntity(adj))
}

// List godoc
// @Summary      Listar ajustes, más recientes primero
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.AdjustmentResponse
// @Router       /api/adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	adjs, err := h.uc.List(c.Context(), pagination(c))
	if err != nil {
		return handleError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(adjs))
	for _, a := range adjs {
		out = append(out, dto.AdjustmentFromEntity(a))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un ajuste
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	adj, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.AdjustmentFromEntity(adj))
}
