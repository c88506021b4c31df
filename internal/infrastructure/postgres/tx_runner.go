package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexwms/warehouse-api/internal/application/documents"
	"github.com/nexwms/warehouse-api/internal/application/ledger"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)
var _ documents.TxRunner = (*TxRunner)(nil)

// Espera máxima por el bloqueo de una fila de stock antes de rendirse con
// domain.ErrLockTimeout (el caller reintenta).
const stockLockTimeout = "3s"

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con los
// repositorios atados a la tx. La exclusividad por clave de stock se apoya en
// el bloqueo de fila (SELECT FOR UPDATE), por lo que funciona igual con varias
// instancias del servicio sobre la misma base.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con lock_timeout acotado, ejecuta fn con los
// repos de stock y journal atados a la tx, y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	journalRepo repository.MovementJournalRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+stockLockTimeout+"'"); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	if err := fn(NewStockLevelRepository(tx), NewMovementJournalRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDocuments inicia una transacción con los repositorios documentales
// (creación de documento + líneas como unidad).
func (r *TxRunner) RunDocuments(ctx context.Context, fn func(
	receiptRepo repository.ReceiptRepository,
	deliveryRepo repository.DeliveryRepository,
	transferRepo repository.TransferOrderRepository,
	adjustmentRepo repository.AdjustmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewReceiptRepository(tx),
		NewDeliveryRepository(tx),
		NewTransferOrderRepository(tx),
		NewAdjustmentRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
