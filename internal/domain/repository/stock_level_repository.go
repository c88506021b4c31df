package repository

import (
	"context"

	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// StockLevelRepository almacén de cantidades actuales por (producto, ubicación).
//
// GetForUpdate y ApplyDelta son de uso exclusivo del coordinador del ledger
// dentro de una transacción; el resto son lecturas para dashboard/reportes.
type StockLevelRepository interface {
	// Get devuelve el nivel o domain.ErrNotFound.
	Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error)

	// ListByProduct lista los niveles de un producto ordenados por nombre de ubicación.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error)

	// ListByLocation lista los niveles de una ubicación ordenados por nombre de producto.
	ListByLocation(ctx context.Context, locationID string) ([]*entity.StockLevel, error)

	// ListAll lista todos los niveles ordenados por producto y ubicación.
	ListAll(ctx context.Context, limit, offset int) ([]*entity.StockLevel, error)

	// ListLowStock devuelve los niveles con on_hand <= min_stock y min_stock > 0,
	// ordenados por criticidad (on_hand/min ascendente) y nombre de producto.
	ListLowStock(ctx context.Context) ([]*entity.StockLevel, error)

	// GetForUpdate crea la fila si no existe (cantidades en cero) y la bloquea
	// (SELECT FOR UPDATE). Serializa las mutaciones por clave de stock.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockLevel, error)

	// ApplyDelta aplica los deltas con piso en cero (GREATEST(0, q+δ)) en una
	// sola sentencia y devuelve el nivel resultante. Actualiza last_updated_at.
	ApplyDelta(ctx context.Context, productID, locationID string, onHandDelta, freeToUseDelta int64) (*entity.StockLevel, error)

	// UpdateThresholds fija los umbrales de alerta min/max. No toca cantidades.
	UpdateThresholds(ctx context.Context, productID, locationID string, min int64, max *int64) error

	// Delete elimina el registro solo si ambas cantidades son cero;
	// domain.ErrStockNotEmpty en caso contrario.
	Delete(ctx context.Context, productID, locationID string) error
}
