package ledger

import "github.com/nexwms/warehouse-api/internal/domain/entity"

// MovementRequest entrada de RecordMovement, el único punto de mutación del ledger.
//
// Quantity es una magnitud (> 0) para receipt/delivery/transfer. Para
// adjustment se ignora y NewQuantity lleva la cantidad observada en el conteo
// físico (>= 0); el coordinador registra la diferencia, no el absoluto.
type MovementRequest struct {
	TransactionRef    string
	Type              string
	ProductID         string
	FromLocationID    string
	ToLocationID      string
	Quantity          int64
	NewQuantity       *int64
	ResponsibleUserID string
	Description       string
}

// MovementResult resultado de un movimiento confirmado.
//
// EffectiveChange es el delta realmente aplicado al stock en mano (puede ser
// menor que la magnitud pedida por la política de piso en cero); es también el
// valor journalizado, de modo que el journal siempre reconstruye el stock.
type MovementResult struct {
	MovementID      int64
	TransactionRef  string
	TransactionType string
	EffectiveChange int64
	FromStock       *entity.StockLevel
	ToStock         *entity.StockLevel
}

// Stock devuelve el nivel principal afectado: destino si existe, si no origen.
func (r *MovementResult) Stock() *entity.StockLevel {
	if r.ToStock != nil {
		return r.ToStock
	}
	return r.FromStock
}
