package repository

import (
	"context"
	"time"

	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// MovementFilter filtros de consulta del journal. LocationID casa contra
// origen o destino del movimiento.
type MovementFilter struct {
	ProductID       string
	LocationID      string
	TransactionType string
	From            *time.Time
	To              *time.Time
}

// MovementJournalRepository journal append-only de movimientos de stock.
// No existen operaciones de actualización ni borrado: las correcciones se
// registran como entradas compensatorias.
type MovementJournalRepository interface {
	// Append persiste la entrada y devuelve su movement_id monótono.
	// Asigna MoveTimestamp si viene en cero. Si el producto, ubicación o
	// usuario referenciado no existe devuelve domain.ErrUnknownReference
	// (única validación del journal; las reglas de negocio son del coordinador).
	Append(ctx context.Context, e *entity.MovementEntry) (int64, error)

	// GetByID devuelve una entrada o domain.ErrNotFound.
	GetByID(ctx context.Context, movementID int64) (*entity.MovementEntry, error)

	// List devuelve entradas ordenadas por timestamp descendente, paginadas.
	List(ctx context.Context, f MovementFilter, limit, offset int) ([]*entity.MovementEntry, error)

	// Count total de entradas que casan con el filtro (para paginación).
	Count(ctx context.Context, f MovementFilter) (int64, error)

	// Summarize agrega por tipo de transacción: conteo, cantidad absoluta
	// total y productos distintos.
	Summarize(ctx context.Context, f MovementFilter) ([]*entity.MovementSummary, error)

	// SumByKey suma firmada de los movimientos que afectan a la clave:
	// +change si la ubicación es destino; para traslados −change si es origen;
	// para entradas de una sola ubicación el change ya viene firmado.
	// Base de la auditoría de reconstruibilidad del stock.
	SumByKey(ctx context.Context, productID, locationID string) (int64, error)
}
