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

// ReceiptUseCase flujo de órdenes de recepción. Al confirmarse una orden se
// publica un movimiento receipt por línea, todas las líneas bajo el mismo
// transaction_ref (REC-<referencia>), de modo que el lote completo es
// rastreable en el journal.
type ReceiptUseCase struct {
	docTx       TxRunner
	receiptRepo repository.ReceiptRepository
	recorder    MovementRecorder
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(docTx TxRunner, receiptRepo repository.ReceiptRepository, recorder MovementRecorder) *ReceiptUseCase {
	return &ReceiptUseCase{docTx: docTx, receiptRepo: receiptRepo, recorder: recorder}
}

// Create registra una orden de recepción en borrador con sus líneas.
func (uc *ReceiptUseCase) Create(ctx context.Context, userID string, in dto.CreateReceiptRequest) (*entity.Receipt, error) {
	if in.Reference == "" || in.ToLocationID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.DocumentItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		items = append(items, entity.DocumentItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	rec := &entity.Receipt{
		Reference:         in.Reference,
		ScheduleDate:      in.ScheduleDate,
		Counterparty:      in.Counterparty,
		ToLocationID:      in.ToLocationID,
		ResponsibleUserID: userID,
		Status:            entity.DocumentStatusDraft,
		Items:             items,
	}
	err := uc.docTx.RunDocuments(ctx, func(
		receiptRepo repository.ReceiptRepository,
		_ repository.DeliveryRepository,
		_ repository.TransferOrderRepository,
		_ repository.AdjustmentRepository,
	) error {
		return receiptRepo.Create(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return uc.receiptRepo.GetByID(ctx, rec.ID)
}

// GetByID devuelve una orden con sus líneas o domain.ErrNotFound.
func (uc *ReceiptUseCase) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	return uc.receiptRepo.GetByID(ctx, id)
}

// List órdenes paginadas, opcionalmente filtradas por estado.
func (uc *ReceiptUseCase) List(ctx context.Context, status string, p dto.Pagination) ([]*entity.Receipt, error) {
	if status != "" && !entity.IsValidDocumentStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	p.Normalize()
	return uc.receiptRepo.List(ctx, status, p.Limit, p.Offset)
}

// MarkReady pasa la orden de draft a ready.
func (uc *ReceiptUseCase) MarkReady(ctx context.Context, id string) (*entity.Receipt, error) {
	return uc.transition(ctx, id, entity.DocumentStatusReady)
}

// Cancel anula una orden que todavía no tocó el ledger.
func (uc *ReceiptUseCase) Cancel(ctx context.Context, id string) (*entity.Receipt, error) {
	return uc.transition(ctx, id, entity.DocumentStatusCancelled)
}

// Confirm cierra una orden ready: publica un movimiento receipt por línea y
// marca la orden como done. Si una línea falla, la orden queda en ready y el
// journal conserva las líneas ya aplicadas bajo el transaction_ref del lote;
// el reintento del ref completo es responsabilidad del operador.
func (uc *ReceiptUseCase) Confirm(ctx context.Context, id, userID string) (*entity.Receipt, error) {
	rec, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != entity.DocumentStatusReady {
		return nil, domain.ErrConflict
	}

	ref := "REC-" + rec.Reference
	for _, it := range rec.Items {
		_, err := uc.recorder.RecordMovement(ctx, ledger.MovementRequest{
			TransactionRef:    ref,
			Type:              entity.TransactionTypeReceipt,
			ProductID:         it.ProductID,
			ToLocationID:      rec.ToLocationID,
			Quantity:          it.Quantity,
			ResponsibleUserID: userID,
			Description:       fmt.Sprintf("Recepción %s de %s", rec.Reference, rec.Counterparty),
		})
		if err != nil {
			return nil, fmt.Errorf("confirm receipt %s line %d: %w", rec.Reference, it.LineNo, err)
		}
	}

	if err := uc.receiptRepo.UpdateStatus(ctx, id, entity.DocumentStatusDone); err != nil {
		return nil, err
	}
	return uc.receiptRepo.GetByID(ctx, id)
}

func (uc *ReceiptUseCase) transition(ctx context.Context, id, to string) (*entity.Receipt, error) {
	rec, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(rec.Status, to) {
		return nil, domain.ErrConflict
	}
	if err := uc.receiptRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	return uc.receiptRepo.GetByID(ctx, id)
}
