package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/application/journal"
	"github.com/nexwms/warehouse-api/internal/application/ledger"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// MovementHandler registro directo de movimientos y consultas del journal.
type MovementHandler struct {
	coordinator *ledger.Coordinator
	journalUC   *journal.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(coordinator *ledger.Coordinator, journalUC *journal.UseCase) *MovementHandler {
	return &MovementHandler{coordinator: coordinator, journalUC: journalUC}
}

// Record godoc
// @Summary      Registrar un movimiento de stock
// @Description  Punto único de mutación del ledger: receipt, delivery,
// @Description  transfer o adjustment. El usuario responsable sale del token.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "movimiento"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.coordinator.RecordMovement(c.Context(), ledger.MovementRequest{
		TransactionRef:    in.TransactionRef,
		Type:              in.Type,
		ProductID:         in.ProductID,
		FromLocationID:    in.FromLocationID,
		ToLocationID:      in.ToLocationID,
		Quantity:          in.Quantity,
		NewQuantity:       in.NewQuantity,
		ResponsibleUserID: GetUserID(c),
		Description:       in.Description,
	})
	if err != nil {
		return handleError(c, err)
	}

	resp := dto.MovementResultResponse{
		MovementID:      result.MovementID,
		TransactionRef:  result.TransactionRef,
		TransactionType: result.TransactionType,
		EffectiveChange: result.EffectiveChange,
	}
	if result.FromStock != nil {
		fs := dto.StockLevelFromEntity(result.FromStock)
		resp.FromStock = &fs
	}
	if result.ToStock != nil {
		ts := dto.StockLevelFromEntity(result.ToStock)
		resp.ToStock = &ts
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// History godoc
// @Summary      Historial de movimientos paginado
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "filtrar por producto"
// @Param        location_id  query  string  false  "origen o destino"
// @Param        type         query  string  false  "receipt|delivery|transfer|adjustment"
// @Param        from         query  string  false  "desde (RFC3339)"
// @Param        to           query  string  false  "hasta (RFC3339)"
// @Param        limit        query  int     false  "tamaño de página"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementHistoryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	f, err := movementFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtro de fechas inválido (RFC3339)"})
	}
	resp, err := h.journalUC.History(c.Context(), f, pagination(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Detalle de un movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "movement_id"
// @Success      200  {object}  dto.MovementEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	entry, err := h.journalUC.GetByID(c.Context(), int64(id))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MovementEntryFromEntity(entry))
}

// Summary godoc
// @Summary      Agregados del journal por tipo de transacción
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "filtrar por producto"
// @Param        location_id  query  string  false  "origen o destino"
// @Param        from         query  string  false  "desde (RFC3339)"
// @Param        to           query  string  false  "hasta (RFC3339)"
// @Success      200  {array}   dto.MovementSummaryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/movements/summary [get]
func (h *MovementHandler) Summary(c *fiber.Ctx) error {
	f, err := movementFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtro de fechas inválido (RFC3339)"})
	}
	rows, err := h.journalUC.Summarize(c.Context(), f)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(rows)
}

// movementFilter arma el filtro del journal desde la query string.
func movementFilter(c *fiber.Ctx) (repository.MovementFilter, error) {
	f := repository.MovementFilter{
		ProductID:       c.Query("product_id"),
		LocationID:      c.Query("location_id"),
		TransactionType: c.Query("type"),
	}
	if raw := c.Query("from"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, err
		}
		f.From = &ts
	}
	if raw := c.Query("to"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, err
		}
		f.To = &ts
	}
	return f, nil
}
