package dto

import (
	"time"

	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// StockLevelResponse nivel de stock para la API.
type StockLevelResponse struct {
	ProductID         string    `json:"product_id"`
	LocationID        string    `json:"location_id"`
	QuantityOnHand    int64     `json:"quantity_on_hand"`
	QuantityFreeToUse int64     `json:"quantity_free_to_use"`
	MinStockLevel     int64     `json:"min_stock_level"`
	MaxStockLevel     *int64    `json:"max_stock_level,omitempty"`
	LastUpdatedAt     time.Time `json:"last_updated_at"`
	ProductName       string    `json:"product_name,omitempty"`
	SKUCode           string    `json:"sku_code,omitempty"`
	UnitOfMeasure     string    `json:"unit_of_measure,omitempty"`
	LocationName      string    `json:"location_name,omitempty"`
	WarehouseName     string    `json:"warehouse_name,omitempty"`
}

// StockLevelFromEntity mapea la entidad al DTO.
func StockLevelFromEntity(s *entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ProductID:         s.ProductID,
		LocationID:        s.LocationID,
		QuantityOnHand:    s.QuantityOnHand,
		QuantityFreeToUse: s.QuantityFreeToUse,
		MinStockLevel:     s.MinStockLevel,
		MaxStockLevel:     s.MaxStockLevel,
		LastUpdatedAt:     s.LastUpdatedAt,
		ProductName:       s.ProductName,
		SKUCode:           s.SKUCode,
		UnitOfMeasure:     s.UnitOfMeasure,
		LocationName:      s.LocationName,
		WarehouseName:     s.WarehouseName,
	}
}

// StockLevelsFromEntities mapea un listado.
func StockLevelsFromEntities(levels []*entity.StockLevel) []StockLevelResponse {
	out := make([]StockLevelResponse, 0, len(levels))
	for _, s := range levels {
		out = append(out, StockLevelFromEntity(s))
	}
	return out
}

// UpdateThresholdsRequest actualización de umbrales min/max.
type UpdateThresholdsRequest struct {
	MinStockLevel int64  `json:"min_stock_level"`
	MaxStockLevel *int64 `json:"max_stock_level"`
}

// StockAuditResponse resultado de la auditoría de reconstruibilidad de una clave.
type StockAuditResponse struct {
	ProductID      string `json:"product_id"`
	LocationID     string `json:"location_id"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
	JournalSum     int64  `json:"journal_sum"`
	Consistent     bool   `json:"consistent"`
}
