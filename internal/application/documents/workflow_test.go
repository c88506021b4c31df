package documents_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexwms/warehouse-api/internal/application/documents"
	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/application/ledger"
	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	prodTornillo = "10000000-0000-0000-0000-000000000001"
	prodCable    = "10000000-0000-0000-0000-000000000002"
	locRecepcion = "20000000-0000-0000-0000-000000000001"
	usuarioOp    = "30000000-0000-0000-0000-000000000001"
)

type fakeReceiptRepo struct {
	byID   map[string]*entity.Receipt
	nextID int
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{byID: make(map[string]*entity.Receipt), nextID: 1}
}

func (r *fakeReceiptRepo) Create(_ context.Context, rec *entity.Receipt) error {
	rec.ID = fmt.Sprintf("rec-%03d", r.nextID)
	r.nextID++
	rec.CreatedAt = time.Now().UTC()
	for i := range rec.Items {
		rec.Items[i].LineNo = i + 1
	}
	cp := *rec
	r.byID[rec.ID] = &cp
	return nil
}

func (r *fakeReceiptRepo) GetByID(_ context.Context, id string) (*entity.Receipt, error) {
	rec, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeReceiptRepo) List(_ context.Context, status string, _, _ int) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, rec := range r.byID {
		if status == "" || rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeReceiptRepo) UpdateStatus(_ context.Context, id, status string) error {
	rec, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Status = status
	if status == entity.DocumentStatusDone {
		now := time.Now().UTC()
		rec.ValidatedAt = &now
	}
	return nil
}

type fakeAdjustmentRepo struct{ created []*entity.StockAdjustment }

func (r *fakeAdjustmentRepo) Create(_ context.Context, a *entity.StockAdjustment) error {
	a.ID = fmt.Sprintf("adj-%03d", len(r.created)+1)
	a.Difference = a.NewQuantity - a.OldQuantity
	r.created = append(r.created, a)
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(_ context.Context, id string) (*entity.StockAdjustment, error) {
	for _, a := range r.created {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeAdjustmentRepo) List(context.Context, int, int) ([]*entity.StockAdjustment, error) {
	return r.created, nil
}

// fakeDocTx pasa los repos directamente; la atomicidad real la da la BD.
type fakeDocTx struct {
	receipts    *fakeReceiptRepo
	adjustments *fakeAdjustmentRepo
}

func (tx *fakeDocTx) RunDocuments(ctx context.Context, fn func(
	repository.ReceiptRepository,
	repository.DeliveryRepository,
	repository.TransferOrderRepository,
	repository.AdjustmentRepository,
) error) error {
	return fn(tx.receipts, nil, nil, tx.adjustments)
}

// fakeRecorder captura las peticiones publicadas al ledger. currentOnHand
// simula el stock en mano que el coordinador vería al aplicar un ajuste.
type fakeRecorder struct {
	requests      []ledger.MovementRequest
	failFromCall  int // 1-based; 0 = nunca falla
	currentOnHand int64
}

func (f *fakeRecorder) RecordMovement(_ context.Context, req ledger.MovementRequest) (*ledger.MovementResult, error) {
	call := len(f.requests) + 1
	if f.failFromCall > 0 && call >= f.failFromCall {
		return nil, domain.ErrLockTimeout
	}
	f.requests = append(f.requests, req)

	effective := req.Quantity
	if req.Type == entity.TransactionTypeAdjustment {
		effective = *req.NewQuantity - f.currentOnHand
	}
	return &ledger.MovementResult{
		MovementID:      int64(call),
		TransactionRef:  req.TransactionRef,
		TransactionType: req.Type,
		EffectiveChange: effective,
	}, nil
}

func newReceiptWorld() (*documents.ReceiptUseCase, *fakeReceiptRepo, *fakeRecorder) {
	receipts := newFakeReceiptRepo()
	recorder := &fakeRecorder{}
	tx := &fakeDocTx{receipts: receipts, adjustments: &fakeAdjustmentRepo{}}
	return documents.NewReceiptUseCase(tx, receipts, recorder), receipts, recorder
}

func draftReceipt(t *testing.T, uc *documents.ReceiptUseCase) *entity.Receipt {
	t.Helper()
	rec, err := uc.Create(context.Background(), usuarioOp, dto.CreateReceiptRequest{
		Reference:    "RCP-2026-001",
		ScheduleDate: time.Now().UTC(),
		Counterparty: "Proveedor Andino SAS",
		ToLocationID: locRecepcion,
		Items: []dto.DocumentItemRequest{
			{ProductID: prodTornillo, Quantity: 100},
			{ProductID: prodCable, Quantity: 25},
		},
	})
	require.NoError(t, err)
	return rec
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida de la orden de recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestReceipt_CreateEnBorrador(t *testing.T) {
	uc, _, recorder := newReceiptWorld()

	rec := draftReceipt(t, uc)

	assert.Equal(t, entity.DocumentStatusDraft, rec.Status)
	assert.NotEmpty(t, rec.ID)
	require.Len(t, rec.Items, 2)
	assert.Equal(t, 1, rec.Items[0].LineNo)
	assert.Empty(t, recorder.requests, "crear un borrador no toca el ledger")
}

func TestReceipt_CreateRechazaEntradasInvalidas(t *testing.T) {
	uc, _, _ := newReceiptWorld()
	ctx := context.Background()

	_, err := uc.Create(ctx, usuarioOp, dto.CreateReceiptRequest{
		ToLocationID: locRecepcion,
		Items:        []dto.DocumentItemRequest{{ProductID: prodTornillo, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin referencia")

	_, err = uc.Create(ctx, usuarioOp, dto.CreateReceiptRequest{
		Reference:    "RCP-X",
		ToLocationID: locRecepcion,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.Create(ctx, usuarioOp, dto.CreateReceiptRequest{
		Reference:    "RCP-X",
		ToLocationID: locRecepcion,
		Items:        []dto.DocumentItemRequest{{ProductID: prodTornillo, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "línea con cantidad cero")
}

func TestReceipt_ConfirmPublicaUnMovimientoPorLinea(t *testing.T) {
	uc, _, recorder := newReceiptWorld()
	ctx := context.Background()
	rec := draftReceipt(t, uc)

	_, err := uc.MarkReady(ctx, rec.ID)
	require.NoError(t, err)

	done, err := uc.Confirm(ctx, rec.ID, usuarioOp)
	require.NoError(t, err)

	assert.Equal(t, entity.DocumentStatusDone, done.Status)
	assert.NotNil(t, done.ValidatedAt)

	require.Len(t, recorder.requests, 2, "un movimiento por línea")
	for _, req := range recorder.requests {
		assert.Equal(t, "REC-RCP-2026-001", req.TransactionRef, "todas las líneas comparten el ref del lote")
		assert.Equal(t, entity.TransactionTypeReceipt, req.Type)
		assert.Equal(t, locRecepcion, req.ToLocationID)
		assert.Equal(t, usuarioOp, req.ResponsibleUserID)
	}
	assert.Equal(t, int64(100), recorder.requests[0].Quantity)
	assert.Equal(t, int64(25), recorder.requests[1].Quantity)
}

func TestReceipt_ConfirmEnBorradorEsConflicto(t *testing.T) {
	uc, _, recorder := newReceiptWorld()
	rec := draftReceipt(t, uc)

	_, err := uc.Confirm(context.Background(), rec.ID, usuarioOp)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, recorder.requests)
}

// Si una línea falla a mitad del lote la orden queda en ready (no en done): el
// operador reintenta el ref completo y el journal conserva lo ya aplicado.
func TestReceipt_FalloDeLineaDejaLaOrdenEnReady(t *testing.T) {
	uc, receipts, recorder := newReceiptWorld()
	ctx := context.Background()
	rec := draftReceipt(t, uc)

	_, err := uc.MarkReady(ctx, rec.ID)
	require.NoError(t, err)

	recorder.failFromCall = 2
	_, err = uc.Confirm(ctx, rec.ID, usuarioOp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockTimeout)

	after, err := receipts.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusReady, after.Status, "la orden no avanza a done")
	assert.Len(t, recorder.requests, 1, "la primera línea sí quedó publicada")
}

func TestReceipt_Cancelar(t *testing.T) {
	uc, _, _ := newReceiptWorld()
	ctx := context.Background()

	// Desde draft.
	rec := draftReceipt(t, uc)
	cancelled, err := uc.Cancel(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusCancelled, cancelled.Status)

	// Desde ready.
	rec2, err := uc.Create(ctx, usuarioOp, dto.CreateReceiptRequest{
		Reference:    "RCP-2026-002",
		ScheduleDate: time.Now().UTC(),
		ToLocationID: locRecepcion,
		Items:        []dto.DocumentItemRequest{{ProductID: prodCable, Quantity: 5}},
	})
	require.NoError(t, err)
	_, err = uc.MarkReady(ctx, rec2.ID)
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, rec2.ID)
	require.NoError(t, err)

	// Una orden cancelada no revive.
	_, err = uc.MarkReady(ctx, rec2.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Una orden done no se cancela.
	rec3 := draftReceipt(t, uc)
	_, err = uc.MarkReady(ctx, rec3.ID)
	require.NoError(t, err)
	_, err = uc.Confirm(ctx, rec3.ID, usuarioOp)
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, rec3.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes por conteo
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustment_RegisterGuardaAntesYDespues(t *testing.T) {
	adjustments := &fakeAdjustmentRepo{}
	recorder := &fakeRecorder{currentOnHand: 50}
	tx := &fakeDocTx{receipts: newFakeReceiptRepo(), adjustments: adjustments}
	uc := documents.NewAdjustmentUseCase(tx, adjustments, recorder)

	adj, err := uc.Register(context.Background(), usuarioOp, dto.RegisterAdjustmentRequest{
		ProductID:   prodTornillo,
		LocationID:  locRecepcion,
		NewQuantity: 42,
		Reason:      "faltante en conteo semanal",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), adj.OldQuantity, "el antes se deriva del delta efectivo del ledger")
	assert.Equal(t, int64(42), adj.NewQuantity)
	assert.Equal(t, int64(-8), adj.Difference)
	assert.False(t, adj.AdjustmentDate.IsZero())

	require.Len(t, recorder.requests, 1)
	req := recorder.requests[0]
	assert.Equal(t, entity.TransactionTypeAdjustment, req.Type)
	require.NotNil(t, req.NewQuantity)
	assert.Equal(t, int64(42), *req.NewQuantity)
	assert.Contains(t, req.Description, "faltante en conteo semanal")

	require.Len(t, adjustments.created, 1, "el registro de auditoría se persiste")
}

func TestAdjustment_RegisterRechazaCantidadNegativa(t *testing.T) {
	adjustments := &fakeAdjustmentRepo{}
	recorder := &fakeRecorder{}
	tx := &fakeDocTx{receipts: newFakeReceiptRepo(), adjustments: adjustments}
	uc := documents.NewAdjustmentUseCase(tx, adjustments, recorder)

	_, err := uc.Register(context.Background(), usuarioOp, dto.RegisterAdjustmentRequest{
		ProductID:   prodTornillo,
		LocationID:  locRecepcion,
		NewQuantity: -3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Empty(t, recorder.requests, "el rechazo no publica nada")
}
