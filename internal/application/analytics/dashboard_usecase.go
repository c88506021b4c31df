// Package analytics contiene los casos de uso de lecturas agregadas: el
// dashboard operativo de bodega y el resumen de stock por bodega.
package analytics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen del panel principal.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// Nunca toca stock ni journal directamente.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardResponse.
//
// Dos consultas en paralelo:
//  1. GetDashboardCounts      → contadores de documentos y stock
//  2. GetTotalInventoryValue  → valorización total (Σ cantidad × costo)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	type countsResult struct {
		counts *repository.DashboardCounts
		err    error
	}
	type valueResult struct {
		value decimal.Decimal
		err   error
	}

	countsCh := make(chan countsResult, 1)
	valueCh := make(chan valueResult, 1)

	go func() {
		c, err := uc.analyticsRepo.GetDashboardCounts(ctx)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.GetTotalInventoryValue(ctx)
		valueCh <- valueResult{v, err}
	}()

	counts := <-countsCh
	value := <-valueCh
	if counts.err != nil {
		return nil, counts.err
	}
	if value.err != nil {
		return nil, value.err
	}

	c := counts.counts
	return &dto.DashboardResponse{
		Receipts: dto.DashboardDocMetrics{
			Pending:   c.ReceiptsToReceive,
			Attention: c.ReceiptsLate,
			Total:     c.ReceiptsTotal,
		},
		Deliveries: dto.DashboardDocMetrics{
			Pending:   c.DeliveriesToSend,
			Attention: c.DeliveriesWaiting,
			Total:     c.DeliveriesTotal,
		},
		Stock: dto.DashboardStockMetrics{
			TotalItems: c.StockTotalItems,
			LowStock:   c.StockLowCount,
			OutOfStock: c.StockOutOfStock,
		},
		Value: value.value.StringFixed(2),
	}, nil
}

// GetWarehouseSummaries resumen de stock agregado por bodega.
func (uc *DashboardUseCase) GetWarehouseSummaries(ctx context.Context) ([]dto.WarehouseSummaryResponse, error) {
	rows, err := uc.analyticsRepo.GetStockSummaryByWarehouse(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WarehouseSummaryFromRecord(r))
	}
	return out, nil
}
