package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/application/ledger"
	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// AdjustmentUseCase ajustes por conteo físico. A diferencia de los otros
// documentos, un ajuste no tiene borrador: se publica el movimiento adjustment
// (el ledger calcula y journaliza la diferencia) y se persiste el registro de
// auditoría en un solo paso.
type AdjustmentUseCase struct {
	docTx          TxRunner
	adjustmentRepo repository.AdjustmentRepository
	recorder       MovementRecorder
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(docTx TxRunner, adjustmentRepo repository.AdjustmentRepository, recorder MovementRecorder) *AdjustmentUseCase {
	return &AdjustmentUseCase{docTx: docTx, adjustmentRepo: adjustmentRepo, recorder: recorder}
}

// Register aplica un ajuste: fija la cantidad en mano de la clave a la
// cantidad observada y deja constancia del antes/después.
func (uc *AdjustmentUseCase) Register(ctx context.Context, userID string, in dto.RegisterAdjustmentRequest) (*entity.StockAdjustment, error) {
	if in.ProductID == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.NewQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	newQty := in.NewQuantity
	result, err := uc.recorder.RecordMovement(ctx, ledger.MovementRequest{
		TransactionRef:    "ADJ-" + uuid.New().String(),
		Type:              entity.TransactionTypeAdjustment,
		ProductID:         in.ProductID,
		ToLocationID:      in.LocationID,
		NewQuantity:       &newQty,
		ResponsibleUserID: userID,
		Description:       fmt.Sprintf("Ajuste por conteo: %s", in.Reason),
	})
	if err != nil {
		return nil, err
	}

	adj := &entity.StockAdjustment{
		AdjustmentDate:    time.Now().UTC(),
		ProductID:         in.ProductID,
		LocationID:        in.LocationID,
		OldQuantity:       newQty - result.EffectiveChange,
		NewQuantity:       newQty,
		Reason:            in.Reason,
		ResponsibleUserID: userID,
	}
	err = uc.docTx.RunDocuments(ctx, func(
		_ repository.ReceiptRepository,
		_ repository.DeliveryRepository,
		_ repository.TransferOrderRepository,
		adjustmentRepo repository.AdjustmentRepository,
	) error {
		return adjustmentRepo.Create(ctx, adj)
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// GetByID devuelve un ajuste o domain.ErrNotFound.
func (uc *AdjustmentUseCase) GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error) {
	return uc.adjustmentRepo.GetByID(ctx, id)
}

// List ajustes paginados, más recientes primero.
func (uc *AdjustmentUseCase) List(ctx context.Context, p dto.Pagination) ([]*entity.StockAdjustment, error) {
	p.Normalize()
	return uc.adjustmentRepo.List(ctx, p.Limit, p.Offset)
}
