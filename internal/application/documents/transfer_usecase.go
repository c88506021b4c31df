package documents

import (
	"context"
	"fmt"

	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/application/ledger"
	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// TransferUseCase flujo de traslados internos. Una orden de traslado lleva un
// solo producto entre dos ubicaciones; al completarse publica un único
// movimiento transfer (resta en origen, suma en destino, atómico).
type TransferUseCase struct {
	docTx        TxRunner
	transferRepo repository.TransferOrderRepository
	recorder     MovementRecorder
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(docTx TxRunner, transferRepo repository.TransferOrderRepository, recorder MovementRecorder) *TransferUseCase {
	return &TransferUseCase{docTx: docTx, transferRepo: transferRepo, recorder: recorder}
}

// Create registra una orden de traslado en borrador.
func (uc *TransferUseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*entity.TransferOrder, error) {
	if in.Reference == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.FromLocationID == "" || in.ToLocationID == "" || in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidTransfer
	}

	t := &entity.TransferOrder{
		Reference:         in.Reference,
		ProductID:         in.ProductID,
		FromLocationID:    in.FromLocationID,
		ToLocationID:      in.ToLocationID,
		Quantity:          in.Quantity,
		ResponsibleUserID: userID,
		Status:            entity.DocumentStatusDraft,
		TransferDate:      in.TransferDate,
	}
	err := uc.docTx.RunDocuments(ctx, func(
		_ repository.ReceiptRepository,
		_ repository.DeliveryRepository,
		transferRepo repository.TransferOrderRepository,
		_ repository.AdjustmentRepository,
	) error {
		return transferRepo.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return uc.transferRepo.GetByID(ctx, t.ID)
}

// GetByID devuelve una orden o domain.ErrNotFound.
func (uc *TransferUseCase) GetByID(ctx context.Context, id string) (*entity.TransferOrder, error) {
	return uc.transferRepo.GetByID(ctx, id)
}

// List órdenes paginadas, opcionalmente filtradas por estado.
func (uc *TransferUseCase) List(ctx context.Context, status string, p dto.Pagination) ([]*entity.TransferOrder, error) {
	if status != "" && !entity.IsValidDocumentStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	p.Normalize()
	return uc.transferRepo.List(ctx, status, p.Limit, p.Offset)
}

// MarkReady pasa la orden de draft a ready.
func (uc *TransferUseCase) MarkReady(ctx context.Context, id string) (*entity.TransferOrder, error) {
	return uc.transition(ctx, id, entity.DocumentStatusReady)
}

// Cancel anula una orden que todavía no tocó el ledger.
func (uc *TransferUseCase) Cancel(ctx context.Context, id string) (*entity.TransferOrder, error) {
	return uc.transition(ctx, id, entity.DocumentStatusCancelled)
}

// Complete cierra una orden ready publicando el movimiento transfer. El
// ledger exige stock suficiente en origen; con stock parcial la orden queda
// en ready y el error es domain.ErrInsufficientStock.
func (uc *TransferUseCase) Complete(ctx context.Context, id, userID string) (*entity.TransferOrder, error) {
	t, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != entity.DocumentStatusReady {
		return nil, domain.ErrConflict
	}

	_, err = uc.recorder.RecordMovement(ctx, ledger.MovementRequest{
		TransactionRef:    "TRF-" + t.Reference,
		Type:              entity.TransactionTypeTransfer,
		ProductID:         t.ProductID,
		FromLocationID:    t.FromLocationID,
		ToLocationID:      t.ToLocationID,
		Quantity:          t.Quantity,
		ResponsibleUserID: userID,
		Description:       fmt.Sprintf("Traslado %s", t.Reference),
	})
	if err != nil {
		return nil, err
	}

	if err := uc.transferRepo.UpdateStatus(ctx, id, entity.DocumentStatusDone); err != nil {
		return nil, err
	}
	return uc.transferRepo.GetByID(ctx, id)
}

func (uc *TransferUseCase) transition(ctx context.Context, id, to string) (*entity.TransferOrder, error) {
	t, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(t.Status, to) {
		return nil, domain.ErrConflict
	}
	if err := uc.transferRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	return uc.transferRepo.GetByID(ctx, id)
}
