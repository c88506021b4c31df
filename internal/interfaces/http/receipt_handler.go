package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexwms/warehouse-api/internal/application/documents"
	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// ReceiptHandler flujo de órdenes de recepción.
type ReceiptHandler struct {
	uc *documents.ReceiptUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *documents.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de recepción (borrador)
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "orden con líneas"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiptFromEntity(rec))
}

// List godoc
// @Summary      Listar órdenes de recepción
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft|ready|done|cancelled"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.ReceiptResponse
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	recs, err := h.uc.List(c.Context(), c.Query("status"), pagination(c))
	if err != nil {
		return handleError(c, err)
	}
	out := make([]dto.ReceiptResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.ReceiptFromEntity(r))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una orden de recepción
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	rec, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.ReceiptFromEntity(rec))
}

// UpdateStatus godoc
// @Summary      Transicionar una orden de recepción
// @Description  ready: draft→ready. done: confirma la orden y publica los
// @Description  movimientos receipt por línea. cancelled: anula antes de done.
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true  "id"
// @Param        status  query  string  true  "ready|done|cancelled"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/status [put]
func (h *ReceiptHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var rec *entity.Receipt
	var err error
	switch c.Query("status") {
	case entity.DocumentStatusReady:
		rec, err = h.uc.MarkReady(c.Context(), id)
	case entity.DocumentStatusDone:
		rec, err = h.uc.Confirm(c.Context(), id, GetUserID(c))
	case entity.DocumentStatusCancelled:
		rec, err = h.uc.Cancel(c.Context(), id)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser ready, done o cancelled"})
	}
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.ReceiptFromEntity(rec))
}
