package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardCounts métricas del panel principal (original del sistema de bodega).
type DashboardCounts struct {
	ReceiptsToReceive int64
	ReceiptsLate      int64
	ReceiptsTotal     int64
	DeliveriesToSend  int64
	DeliveriesWaiting int64
	DeliveriesTotal   int64
	StockTotalItems   int64
	StockLowCount     int64
	StockOutOfStock   int64
}

// WarehouseStockSummary resumen de stock agregado por bodega.
type WarehouseStockSummary struct {
	WarehouseID    string
	WarehouseName  string
	ShortCode      string
	UniqueProducts int64
	StockEntries   int64
	TotalQuantity  int64
	LowStockItems  int64
	InventoryValue decimal.Decimal // Σ cantidad × costo del producto
}

// AnalyticsRepository lecturas agregadas para dashboard y reportes.
// Solo lectura; nunca muta stock ni journal.
type AnalyticsRepository interface {
	GetDashboardCounts(ctx context.Context) (*DashboardCounts, error)
	GetStockSummaryByWarehouse(ctx context.Context) ([]*WarehouseStockSummary, error)
	GetTotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
}
