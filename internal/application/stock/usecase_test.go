package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/application/stock"
	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles mínimos: solo lo que el caso de uso consulta
// ──────────────────────────────────────────────────────────────────────────────

type stubStockRepo struct {
	level      *entity.StockLevel
	thresholds struct {
		min int64
		max *int64
	}
	thresholdsSet bool
}

func (r *stubStockRepo) Get(context.Context, string, string) (*entity.StockLevel, error) {
	if r.level == nil {
		return nil, domain.ErrNotFound
	}
	cp := *r.level
	return &cp, nil
}

func (r *stubStockRepo) ListByProduct(context.Context, string) ([]*entity.StockLevel, error) {
	return nil, nil
}

func (r *stubStockRepo) ListByLocation(context.Context, string) ([]*entity.StockLevel, error) {
	return nil, nil
}

func (r *stubStockRepo) ListAll(context.Context, int, int) ([]*entity.StockLevel, error) {
	return nil, nil
}

func (r *stubStockRepo) ListLowStock(context.Context) ([]*entity.StockLevel, error) {
	return nil, nil
}

func (r *stubStockRepo) GetForUpdate(context.Context, string, string) (*entity.StockLevel, error) {
	return nil, nil
}

func (r *stubStockRepo) ApplyDelta(context.Context, string, string, int64, int64) (*entity.StockLevel, error) {
	return nil, nil
}

func (r *stubStockRepo) UpdateThresholds(_ context.Context, _, _ string, min int64, max *int64) error {
	if r.level == nil {
		return domain.ErrNotFound
	}
	r.thresholds.min = min
	r.thresholds.max = max
	r.thresholdsSet = true
	r.level.MinStockLevel = min
	r.level.MaxStockLevel = max
	return nil
}

func (r *stubStockRepo) Delete(context.Context, string, string) error { return nil }

type stubJournal struct {
	repository.MovementJournalRepository
	sum int64
}

func (j *stubJournal) SumByKey(context.Context, string, string) (int64, error) {
	return j.sum, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestAudit_ClaveConsistente(t *testing.T) {
	repo := &stubStockRepo{level: &entity.StockLevel{
		ProductID: "p1", LocationID: "l1", QuantityOnHand: 42,
	}}
	uc := stock.NewUseCase(repo, &stubJournal{sum: 42})

	audit, err := uc.Audit(context.Background(), "p1", "l1")
	require.NoError(t, err)

	assert.True(t, audit.Consistent)
	assert.Equal(t, int64(42), audit.QuantityOnHand)
	assert.Equal(t, int64(42), audit.JournalSum)
}

func TestAudit_DetectaDeriva(t *testing.T) {
	repo := &stubStockRepo{level: &entity.StockLevel{
		ProductID: "p1", LocationID: "l1", QuantityOnHand: 42,
	}}
	uc := stock.NewUseCase(repo, &stubJournal{sum: 40})

	audit, err := uc.Audit(context.Background(), "p1", "l1")
	require.NoError(t, err)

	assert.False(t, audit.Consistent, "la deriva entre stock y journal debe detectarse")
}

// Una clave sin registro de stock audita contra cero, no contra ErrNotFound.
func TestAudit_ClaveSinRegistro(t *testing.T) {
	uc := stock.NewUseCase(&stubStockRepo{}, &stubJournal{sum: 0})

	audit, err := uc.Audit(context.Background(), "p1", "l1")
	require.NoError(t, err)

	assert.True(t, audit.Consistent)
	assert.Equal(t, int64(0), audit.QuantityOnHand)
}

// Lecturas repetidas sin mutación intermedia devuelven resultados idénticos:
// ni Get ni Audit tienen efectos secundarios sobre el estado.
func TestLecturas_RepetidasSonIdenticas(t *testing.T) {
	repo := &stubStockRepo{level: &entity.StockLevel{
		ProductID: "p1", LocationID: "l1", QuantityOnHand: 7, MinStockLevel: 2,
	}}
	uc := stock.NewUseCase(repo, &stubJournal{sum: 7})
	ctx := context.Background()

	first, err := uc.Get(ctx, "p1", "l1")
	require.NoError(t, err)
	second, err := uc.Get(ctx, "p1", "l1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	auditFirst, err := uc.Audit(ctx, "p1", "l1")
	require.NoError(t, err)
	auditSecond, err := uc.Audit(ctx, "p1", "l1")
	require.NoError(t, err)
	assert.Equal(t, auditFirst, auditSecond)
}

// ──────────────────────────────────────────────────────────────────────────────
// Umbrales
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateThresholds_Valida(t *testing.T) {
	repo := &stubStockRepo{level: &entity.StockLevel{ProductID: "p1", LocationID: "l1"}}
	uc := stock.NewUseCase(repo, &stubJournal{})
	ctx := context.Background()

	max := int64(100)
	lvl, err := uc.UpdateThresholds(ctx, "p1", "l1", dto.UpdateThresholdsRequest{
		MinStockLevel: 10,
		MaxStockLevel: &max,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), lvl.MinStockLevel)
	require.NotNil(t, lvl.MaxStockLevel)
	assert.Equal(t, int64(100), *lvl.MaxStockLevel)

	_, err = uc.UpdateThresholds(ctx, "p1", "l1", dto.UpdateThresholdsRequest{MinStockLevel: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "min negativo")

	maxMenor := int64(5)
	_, err = uc.UpdateThresholds(ctx, "p1", "l1", dto.UpdateThresholdsRequest{
		MinStockLevel: 10,
		MaxStockLevel: &maxMenor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "max menor que min")
}
