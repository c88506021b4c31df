package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo lecturas agregadas para el dashboard. Consulta stock_levels y
// los documentos directamente, sin pasar por el coordinador (solo lectura).
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardCounts métricas del panel: documentos pendientes/atrasados y
// estado general del stock.
func (r *AnalyticsRepo) GetDashboardCounts(ctx context.Context) (*repository.DashboardCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM receipts WHERE status IN ('draft', 'ready')),
			(SELECT COUNT(*) FROM receipts WHERE status IN ('draft', 'ready') AND schedule_date < CURRENT_DATE),
			(SELECT COUNT(*) FROM receipts),
			(SELECT COUNT(*) FROM deliveries WHERE status = 'ready'),
			(SELECT COUNT(*) FROM deliveries WHERE status = 'draft'),
			(SELECT COUNT(*) FROM deliveries),
			(SELECT COALESCE(SUM(quantity_on_hand), 0) FROM stock_levels),
			(SELECT COUNT(*) FROM stock_levels WHERE quantity_on_hand <= min_stock_level AND min_stock_level > 0),
			(SELECT COUNT(*) FROM stock_levels WHERE quantity_on_hand = 0)`
	var c repository.DashboardCounts
	err := r.q.QueryRow(ctx, query).Scan(
		&c.ReceiptsToReceive, &c.ReceiptsLate, &c.ReceiptsTotal,
		&c.DeliveriesToSend, &c.DeliveriesWaiting, &c.DeliveriesTotal,
		&c.StockTotalItems, &c.StockLowCount, &c.StockOutOfStock,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &c, nil
}

// GetStockSummaryByWarehouse resumen por bodega con valorización
// (Σ cantidad × costo, NUMERIC -> decimal).
func (r *AnalyticsRepo) GetStockSummaryByWarehouse(ctx context.Context) ([]*repository.WarehouseStockSummary, error) {
	query := `
		SELECT w.id, w.name, w.short_code,
		       COUNT(DISTINCT sl.product_id),
		       COUNT(sl.product_id),
		       COALESCE(SUM(sl.quantity_on_hand), 0),
		       COALESCE(SUM(CASE WHEN sl.quantity_on_hand <= sl.min_stock_level AND sl.min_stock_level > 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(sl.quantity_on_hand * p.cost), 0)
		FROM warehouses w
		LEFT JOIN locations l ON l.warehouse_id = w.id
		LEFT JOIN stock_levels sl ON sl.location_id = l.id
		LEFT JOIN products p ON p.id = sl.product_id
		GROUP BY w.id, w.name, w.short_code
		ORDER BY w.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock summary by warehouse: %w", err)
	}
	defer rows.Close()
	var out []*repository.WarehouseStockSummary
	for rows.Next() {
		var s repository.WarehouseStockSummary
		if err := rows.Scan(&s.WarehouseID, &s.WarehouseName, &s.ShortCode,
			&s.UniqueProducts, &s.StockEntries, &s.TotalQuantity, &s.LowStockItems, &s.InventoryValue); err != nil {
			return nil, fmt.Errorf("scan warehouse summary: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// GetTotalInventoryValue valor total del inventario a costo.
func (r *AnalyticsRepo) GetTotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(sl.quantity_on_hand * p.cost), 0)
		FROM stock_levels sl
		JOIN products p ON p.id = sl.product_id`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total inventory value: %w", err)
	}
	return total, nil
}
