// Package journal contiene los casos de uso de consulta del historial de
// movimientos. El journal es append-only: aquí solo hay lecturas.
package journal

import (
	"context"

	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// UseCase consultas del journal: historial paginado, detalle y agregados.
type UseCase struct {
	journalRepo repository.MovementJournalRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(journalRepo repository.MovementJournalRepository) *UseCase {
	return &UseCase{journalRepo: journalRepo}
}

// History devuelve una página de movimientos más el total que casa con el
// filtro, para que el cliente pueda paginar.
func (uc *UseCase) History(ctx context.Context, f repository.MovementFilter, p dto.Pagination) (*dto.MovementHistoryResponse, error) {
	p.Normalize()

	moves, err := uc.journalRepo.List(ctx, f, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.journalRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementEntryResponse, 0, len(moves))
	for _, m := range moves {
		out = append(out, dto.MovementEntryFromEntity(m))
	}
	return &dto.MovementHistoryResponse{
		Moves:  out,
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}, nil
}

// GetByID devuelve una entrada del journal o domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, movementID int64) (*entity.MovementEntry, error) {
	return uc.journalRepo.GetByID(ctx, movementID)
}

// Summarize agregados por tipo de transacción sobre el filtro dado.
func (uc *UseCase) Summarize(ctx context.Context, f repository.MovementFilter) ([]dto.MovementSummaryResponse, error) {
	rows, err := uc.journalRepo.Summarize(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MovementSummaryResponse{
			TransactionType: r.TransactionType,
			MoveCount:       r.MoveCount,
			TotalQuantity:   r.TotalAbsQuantity,
			UniqueProducts:  r.DistinctProductCount,
		})
	}
	return out, nil
}
