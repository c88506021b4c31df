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

// DeliveryUseCase flujo de órdenes de entrega. Al validarse publica un
// movimiento delivery por línea bajo el transaction_ref DEL-<referencia>.
type DeliveryUseCase struct {
	docTx        TxRunner
	deliveryRepo repository.DeliveryRepository
	recorder     MovementRecorder
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(docTx TxRunner, deliveryRepo repository.DeliveryRepository, recorder MovementRecorder) *DeliveryUseCase {
	return &DeliveryUseCase{docTx: docTx, deliveryRepo: deliveryRepo, recorder: recorder}
}

// Create registra una orden de entrega en borrador con sus líneas.
func (uc *DeliveryUseCase) Create(ctx context.Context, userID string, in dto.CreateDeliveryRequest) (*entity.Delivery, error) {
	if in.Reference == "" || in.FromLocationID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.DocumentItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		items = append(items, entity.DocumentItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	del := &entity.Delivery{
		Reference:         in.Reference,
		ScheduleDate:      in.ScheduleDate,
		Counterparty:      in.Counterparty,
		FromLocationID:    in.FromLocationID,
		ResponsibleUserID: userID,
		Status:            entity.DocumentStatusDraft,
		Items:             items,
	}
	err := uc.docTx.RunDocuments(ctx, func(
		_ repository.ReceiptRepository,
		deliveryRepo repository.DeliveryRepository,
		_ repository.TransferOrderRepository,
		_ repository.AdjustmentRepository,
	) error {
		return deliveryRepo.Create(ctx, del)
	})
	if err != nil {
		return nil, err
	}
	return uc.deliveryRepo.GetByID(ctx, del.ID)
}

// GetByID devuelve una orden con sus líneas o domain.ErrNotFound.
func (uc *DeliveryUseCase) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	return uc.deliveryRepo.GetByID(ctx, id)
}

// List órdenes paginadas, opcionalmente filtradas por estado.
func (uc *DeliveryUseCase) List(ctx context.Context, status string, p dto.Pagination) ([]*entity.Delivery, error) {
	if status != "" && !entity.IsValidDocumentStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	p.Normalize()
	return uc.deliveryRepo.List(ctx, status, p.Limit, p.Offset)
}

// MarkReady pasa la orden de draft a ready (picking completado).
func (uc *DeliveryUseCase) MarkReady(ctx context.Context, id string) (*entity.Delivery, error) {
	return uc.transition(ctx, id, entity.DocumentStatusReady)
}

// Cancel anula una orden que todavía no tocó el ledger.
func (uc *DeliveryUseCase) Cancel(ctx context.Context, id string) (*entity.Delivery, error) {
	return uc.transition(ctx, id, entity.DocumentStatusCancelled)
}

// Validate cierra una orden ready: publica un movimiento delivery por línea y
// marca la orden como done. El ledger acota cada salida al stock disponible
// (piso en cero) y journaliza el delta efectivo.
func (uc *DeliveryUseCase) Validate(ctx context.Context, id, userID string) (*entity.Delivery, error) {
	del, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if del.Status != entity.DocumentStatusReady {
		return nil, domain.ErrConflict
	}

	ref := "DEL-" + del.Reference
	for _, it := range del.Items {
		_, err := uc.recorder.RecordMovement(ctx, ledger.MovementRequest{
			TransactionRef:    ref,
			Type:              entity.TransactionTypeDelivery,
			ProductID:         it.ProductID,
			FromLocationID:    del.FromLocationID,
			Quantity:          it.Quantity,
			ResponsibleUserID: userID,
			Description:       fmt.Sprintf("Entrega %s a %s", del.Reference, del.Counterparty),
		})
		if err != nil {
			return nil, fmt.Errorf("validate delivery %s line %d: %w", del.Reference, it.LineNo, err)
		}
	}

	if err := uc.deliveryRepo.UpdateStatus(ctx, id, entity.DocumentStatusDone); err != nil {
		return nil, err
	}
	return uc.deliveryRepo.GetByID(ctx, id)
}

func (uc *DeliveryUseCase) transition(ctx context.Context, id, to string) (*entity.Delivery, error) {
	del, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(del.Status, to) {
		return nil, domain.ErrConflict
	}
	if err := uc.deliveryRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	return uc.deliveryRepo.GetByID(ctx, id)
}
