package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexwms/warehouse-api/internal/application/documents"
	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// DeliveryHandler flujo de órdenes de entrega.
type DeliveryHandler struct {
	uc *documents.DeliveryUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *documents.DeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de entrega (borrador)
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "orden con líneas"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	del, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DeliveryFromEntity(del))
}

// List godoc
// @Summary      Listar órdenes de entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft|ready|done|cancelled"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.DeliveryResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	dels, err := h.uc.List(c.Context(), c.Query("status"), pagination(c))
	if err != nil {
		return handleError(c, err)
	}
	out := make([]dto.DeliveryResponse, 0, len(dels))
	for _, d := range dels {
		out = append(out, dto.DeliveryFromEntity(d))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una orden de entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	del, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.DeliveryFromEntity(del))
}

// UpdateStatus godoc
// @Summary      Transicionar una orden de entrega
// @Description  ready: picking completo. done: valida la orden y publica los
// @Description  movimientos delivery por línea. cancelled: anula antes de done.
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true  "id"
// @Param        status  query  string  true  "ready|done|cancelled"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/status [put]
func (h *DeliveryHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var del *entity.Delivery
	var err error
	switch c.Query("status") {
	case entity.DocumentStatusReady:
		del, err = h.uc.MarkReady(c.Context(), id)
	case entity.DocumentStatusDone:
		del, err = h.uc.Validate(c.Context(), id, GetUserID(c))
	case entity.DocumentStatusCancelled:
		del, err = h.uc.Cancel(c.Context(), id)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser ready, done o cancelled"})
	}
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.DeliveryFromEntity(del))
}
