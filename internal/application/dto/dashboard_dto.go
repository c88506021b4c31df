package dto

import (
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// DashboardResponse métricas del panel principal.
type DashboardResponse struct {
	Receipts   DashboardDocMetrics   `json:"receipts"`
	Deliveries DashboardDocMetrics   `json:"deliveries"`
	Stock      DashboardStockMetrics `json:"stock"`
	Value      string                `json:"total_inventory_value"`
}

// DashboardDocMetrics contadores de documentos. Attention agrupa lo que
// requiere acción: recepciones atrasadas o entregas esperando stock.
type DashboardDocMetrics struct {
	Pending   int64 `json:"pending"`
	Attention int64 `json:"attention"`
	Total     int64 `json:"total"`
}

// DashboardStockMetrics contadores de stock.
type DashboardStockMetrics struct {
	TotalItems int64 `json:"total_items"`
	LowStock   int64 `json:"low_stock"`
	OutOfStock int64 `json:"out_of_stock"`
}

// WarehouseSummaryResponse resumen de stock por bodega.
type WarehouseSummaryResponse struct {
	WarehouseID    string `json:"warehouse_id"`
	WarehouseName  string `json:"warehouse_name"`
	ShortCode      string `json:"short_code"`
	UniqueProducts int64  `json:"unique_products"`
	StockEntries   int64  `json:"stock_entries"`
	TotalQuantity  int64  `json:"total_quantity"`
	LowStockItems  int64  `json:"low_stock_items"`
	InventoryValue string `json:"inventory_value"`
}

// WarehouseSummaryFromRecord mapea el agregado de repositorio al DTO.
func WarehouseSummaryFromRecord(s *repository.WarehouseStockSummary) WarehouseSummaryResponse {
	return WarehouseSummaryResponse{
		WarehouseID:    s.WarehouseID,
		WarehouseName:  s.WarehouseName,
		ShortCode:      s.ShortCode,
		UniqueProducts: s.UniqueProducts,
		StockEntries:   s.StockEntries,
		TotalQuantity:  s.TotalQuantity,
		LowStockItems:  s.LowStockItems,
		InventoryValue: s.InventoryValue.StringFixed(2),
	}
}
