package ledger

import (
	"context"

	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios de stock y journal atados a esa transacción. Es el mecanismo de
// atomicidad del ledger: mutación de stock y append al journal se confirman
// juntos o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		journalRepo repository.MovementJournalRepository,
	) error) error
}
