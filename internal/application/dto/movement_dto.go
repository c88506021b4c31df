package dto

import (
	"time"

	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// RecordMovementRequest cuerpo HTTP para registrar un movimiento directo.
// Para type=adjustment se usa new_quantity en lugar de quantity.
type RecordMovementRequest struct {
	TransactionRef string `json:"transaction_ref"`
	Type           string `json:"type"`
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"`
	NewQuantity    *int64 `json:"new_quantity"`
	Description    string `json:"description"`
}

// MovementEntryResponse entrada del journal para la API.
type MovementEntryResponse struct {
	MovementID       int64     `json:"movement_id"`
	TransactionRef   string    `json:"transaction_ref"`
	TransactionType  string    `json:"transaction_type"`
	ProductID        string    `json:"product_id"`
	FromLocationID   *string   `json:"from_location_id"`
	ToLocationID     *string   `json:"to_location_id"`
	QuantityChange   int64     `json:"quantity_change"`
	UnitOfMeasure    string    `json:"unit_of_measure"`
	Description      string    `json:"description"`
	MoveTimestamp    time.Time `json:"move_timestamp"`
	ProductName      string    `json:"product_name,omitempty"`
	SKUCode          string    `json:"sku_code,omitempty"`
	FromLocationName string    `json:"from_location_name,omitempty"`
	ToLocationName   string    `json:"to_location_name,omitempty"`
	ResponsibleUser  string    `json:"responsible_user,omitempty"`
}

// MovementEntryFromEntity mapea la entidad al DTO.
func MovementEntryFromEntity(m *entity.MovementEntry) MovementEntryResponse {
	return MovementEntryResponse{
		MovementID:       m.MovementID,
		TransactionRef:   m.TransactionRef,
		TransactionType:  m.TransactionType,
		ProductID:        m.ProductID,
		FromLocationID:   m.FromLocationID,
		ToLocationID:     m.ToLocationID,
		QuantityChange:   m.QuantityChange,
		UnitOfMeasure:    m.UnitOfMeasure,
		Description:      m.Description,
		MoveTimestamp:    m.MoveTimestamp,
		ProductName:      m.ProductName,
		SKUCode:          m.SKUCode,
		FromLocationName: m.FromLocationName,
		ToLocationName:   m.ToLocationName,
		ResponsibleUser:  m.ResponsibleUser,
	}
}

// MovementHistoryResponse página de historial con total para paginación.
type MovementHistoryResponse struct {
	Moves  []MovementEntryResponse `json:"moves"`
	Total  int64                   `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

// MovementSummaryResponse agregado por tipo de transacción.
type MovementSummaryResponse struct {
	TransactionType string `json:"transaction_type"`
	MoveCount       int64  `json:"move_count"`
	TotalQuantity   int64  `json:"total_quantity"`
	UniqueProducts  int64  `json:"unique_products"`
}

// MovementResultResponse resultado de un movimiento confirmado.
type MovementResultResponse struct {
	MovementID      int64               `json:"movement_id"`
	TransactionRef  string              `json:"transaction_ref"`
	TransactionType string              `json:"transaction_type"`
	EffectiveChange int64               `json:"effective_change"`
	FromStock       *StockLevelResponse `json:"from_stock,omitempty"`
	ToStock         *StockLevelResponse `json:"to_stock,omitempty"`
}
