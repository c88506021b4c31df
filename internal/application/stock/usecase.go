// Package stock contiene los casos de uso de consulta y mantenimiento de los
// niveles de stock. Las mutaciones de cantidades NO viven aquí: pasan todas
// por el coordinador del ledger.
package stock

import (
	"context"
	"errors"

	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// UseCase lecturas de stock, umbrales de alerta y auditoría contra el journal.
type UseCase struct {
	stockRepo   repository.StockLevelRepository
	journalRepo repository.MovementJournalRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(stockRepo repository.StockLevelRepository, journalRepo repository.MovementJournalRepository) *UseCase {
	return &UseCase{stockRepo: stockRepo, journalRepo: journalRepo}
}

// Get devuelve el nivel de una clave o domain.ErrNotFound.
func (uc *UseCase) Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return uc.stockRepo.Get(ctx, productID, locationID)
}

// ListByProduct niveles de un producto en todas sus ubicaciones.
func (uc *UseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	return uc.stockRepo.ListByProduct(ctx, productID)
}

// ListByLocation niveles de todos los productos de una ubicación.
func (uc *UseCase) ListByLocation(ctx context.Context, locationID string) ([]*entity.StockLevel, error) {
	return uc.stockRepo.ListByLocation(ctx, locationID)
}

// List listado paginado de todos los niveles.
func (uc *UseCase) List(ctx context.Context, p dto.Pagination) ([]*entity.StockLevel, error) {
	p.Normalize()
	return uc.stockRepo.ListAll(ctx, p.Limit, p.Offset)
}

// ListLowStock niveles bajo umbral mínimo ordenados por criticidad.
func (uc *UseCase) ListLowStock(ctx context.Context) ([]*entity.StockLevel, error) {
	return uc.stockRepo.ListLowStock(ctx)
}

// UpdateThresholds fija los umbrales de alerta de una clave. min >= 0 y,
// si viene max, max >= min.
func (uc *UseCase) UpdateThresholds(ctx context.Context, productID, locationID string, in dto.UpdateThresholdsRequest) (*entity.StockLevel, error) {
	if in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MaxStockLevel != nil && *in.MaxStockLevel < in.MinStockLevel {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.stockRepo.UpdateThresholds(ctx, productID, locationID, in.MinStockLevel, in.MaxStockLevel); err != nil {
		return nil, err
	}
	return uc.stockRepo.Get(ctx, productID, locationID)
}

// Delete elimina el registro de una clave solo si ambas cantidades son cero.
func (uc *UseCase) Delete(ctx context.Context, productID, locationID string) error {
	return uc.stockRepo.Delete(ctx, productID, locationID)
}

// Audit verifica la reconstruibilidad de una clave: el stock en mano debe ser
// igual a la suma firmada de sus movimientos en el journal. Una clave sin
// registro de stock audita contra cero.
func (uc *UseCase) Audit(ctx context.Context, productID, locationID string) (*dto.StockAuditResponse, error) {
	var onHand int64
	lvl, err := uc.stockRepo.Get(ctx, productID, locationID)
	switch {
	case err == nil:
		onHand = lvl.QuantityOnHand
	case errors.Is(err, domain.ErrNotFound):
		onHand = 0
	default:
		return nil, err
	}

	sum, err := uc.journalRepo.SumByKey(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}

	return &dto.StockAuditResponse{
		ProductID:      productID,
		LocationID:     locationID,
		QuantityOnHand: onHand,
		JournalSum:     sum,
		Consistent:     onHand == sum,
	}, nil
}
