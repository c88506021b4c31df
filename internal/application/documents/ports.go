// Package documents contiene el flujo documental de bodega: recepciones,
// entregas, traslados internos y ajustes por conteo. Los documentos organizan
// el trabajo; las cantidades solo cambian cuando el documento se cierra y el
// flujo publica movimientos a través del coordinador del ledger.
package documents

import (
	"context"

	"github.com/nexwms/warehouse-api/internal/application/ledger"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// MovementRecorder puerta de publicación hacia el ledger. La implementa el
// coordinador; el flujo documental nunca toca stock ni journal directamente.
type MovementRecorder interface {
	RecordMovement(ctx context.Context, req ledger.MovementRequest) (*ledger.MovementResult, error)
}

// TxRunner ejecuta una función con los repositorios documentales atados a una
// transacción (documento + líneas como unidad).
type TxRunner interface {
	RunDocuments(ctx context.Context, fn func(
		receiptRepo repository.ReceiptRepository,
		deliveryRepo repository.DeliveryRepository,
		transferRepo repository.TransferOrderRepository,
		adjustmentRepo repository.AdjustmentRepository,
	) error) error
}
