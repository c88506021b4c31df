package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexwms/warehouse-api/internal/application/documents"
	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// TransferHandler flujo de traslados internos.
type TransferHandler struct {
	uc *documents.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *documents.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de traslado (borrador)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "orden de traslado"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tr, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferFromEntity(tr))
}

// List godoc
// @Summary      Listar órdenes de traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft|ready|done|cancelled"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	trs, err := h.uc.List(c.Context(), c.Query("status"), pagination(c))
	if err != nil {
		return handleError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(trs))
	for _, t := range trs {
		out = append(out, dto.TransferFromEntity(t))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una orden de traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	tr, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.TransferFromEntity(tr))
}

// UpdateStatus godoc
// @Summary      Transicionar una orden de traslado
// @Description  done publica el movimiento transfer (atómico origen→destino);
// @Description  con stock insuficiente la orden queda en ready y responde 409.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true  "id"
// @Param        status  query  string  true  "ready|done|cancelled"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/status [put]
func (h *TransferHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var tr *entity.TransferOrder
	var err error
	switch c.Query("status") {
	case entity.DocumentStatusReady:
		tr, err = h.uc.MarkReady(c.Context(), id)
	case entity.DocumentStatusDone:
		tr, err = h.uc.Complete(c.Context(), id, GetUserID(c))
	case entity.DocumentStatusCancelled:
		tr, err = h.uc.Cancel(c.Context(), id)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser ready, done o cancelled"})
	}
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.TransferFromEntity(tr))
}
