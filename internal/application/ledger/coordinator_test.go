package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexwms/warehouse-api/internal/application/ledger"
	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	productA  = "10000000-0000-0000-0000-00000000000a"
	productB  = "10000000-0000-0000-0000-00000000000b"
	locationX = "20000000-0000-0000-0000-00000000000a"
	locationY = "20000000-0000-0000-0000-00000000000b"
	operario  = "30000000-0000-0000-0000-000000000001"
	inactivo  = "30000000-0000-0000-0000-000000000002"
)

// fakeStockRepo replica la semántica del repositorio real: GetForUpdate crea la
// fila en cero si no existe y ApplyDelta aplica el piso en cero.
type fakeStockRepo struct {
	levels map[entity.StockKey]*entity.StockLevel
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{levels: make(map[entity.StockKey]*entity.StockLevel)}
}

func (r *fakeStockRepo) snapshot() map[entity.StockKey]entity.StockLevel {
	out := make(map[entity.StockKey]entity.StockLevel, len(r.levels))
	for k, v := range r.levels {
		out[k] = *v
	}
	return out
}

func (r *fakeStockRepo) restore(snap map[entity.StockKey]entity.StockLevel) {
	r.levels = make(map[entity.StockKey]*entity.StockLevel, len(snap))
	for k, v := range snap {
		lvl := v
		r.levels[k] = &lvl
	}
}

func (r *fakeStockRepo) Get(_ context.Context, productID, locationID string) (*entity.StockLevel, error) {
	lvl, ok := r.levels[entity.StockKey{ProductID: productID, LocationID: locationID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *lvl
	return &cp, nil
}

func (r *fakeStockRepo) ListByProduct(context.Context, string) ([]*entity.StockLevel, error) {
	return nil, nil
}

func (r *fakeStockRepo) ListByLocation(context.Context, string) ([]*entity.StockLevel, error) {
	return nil, nil
}

func (r *fakeStockRepo) ListAll(context.Context, int, int) ([]*entity.StockLevel, error) {
	return nil, nil
}

func (r *fakeStockRepo) ListLowStock(context.Context) ([]*entity.StockLevel, error) {
	return nil, nil
}

func (r *fakeStockRepo) GetForUpdate(_ context.Context, productID, locationID string) (*entity.StockLevel, error) {
	key := entity.StockKey{ProductID: productID, LocationID: locationID}
	lvl, ok := r.levels[key]
	if !ok {
		lvl = &entity.StockLevel{ProductID: productID, LocationID: locationID}
		r.levels[key] = lvl
	}
	cp := *lvl
	return &cp, nil
}

func (r *fakeStockRepo) ApplyDelta(_ context.Context, productID, locationID string, onHandDelta, freeToUseDelta int64) (*entity.StockLevel, error) {
	key := entity.StockKey{ProductID: productID, LocationID: locationID}
	lvl, ok := r.levels[key]
	if !ok {
		lvl = &entity.StockLevel{ProductID: productID, LocationID: locationID}
		r.levels[key] = lvl
	}
	lvl.QuantityOnHand += onHandDelta
	if lvl.QuantityOnHand < 0 {
		lvl.QuantityOnHand = 0
	}
	lvl.QuantityFreeToUse += freeToUseDelta
	if lvl.QuantityFreeToUse < 0 {
		lvl.QuantityFreeToUse = 0
	}
	lvl.LastUpdatedAt = time.Now().UTC()
	cp := *lvl
	return &cp, nil
}

func (r *fakeStockRepo) UpdateThresholds(_ context.Context, productID, locationID string, min int64, max *int64) error {
	key := entity.StockKey{ProductID: productID, LocationID: locationID}
	lvl, ok := r.levels[key]
	if !ok {
		return domain.ErrNotFound
	}
	lvl.MinStockLevel = min
	lvl.MaxStockLevel = max
	return nil
}

func (r *fakeStockRepo) Delete(_ context.Context, productID, locationID string) error {
	key := entity.StockKey{ProductID: productID, LocationID: locationID}
	lvl, ok := r.levels[key]
	if !ok {
		return domain.ErrNotFound
	}
	if !lvl.IsEmpty() {
		return domain.ErrStockNotEmpty
	}
	delete(r.levels, key)
	return nil
}

// fakeJournal journal append-only en memoria. failAppend simula un fallo de
// persistencia dentro de la transacción.
type fakeJournal struct {
	entries    []*entity.MovementEntry
	nextID     int64
	failAppend bool
}

func newFakeJournal() *fakeJournal {
	return &fakeJournal{nextID: 1}
}

func (j *fakeJournal) Append(_ context.Context, e *entity.MovementEntry) (int64, error) {
	if j.failAppend {
		return 0, errors.New("journal no disponible")
	}
	cp := *e
	cp.MovementID = j.nextID
	j.nextID++
	j.entries = append(j.entries, &cp)
	return cp.MovementID, nil
}

func (j *fakeJournal) GetByID(_ context.Context, movementID int64) (*entity.MovementEntry, error) {
	for _, e := range j.entries {
		if e.MovementID == movementID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (j *fakeJournal) List(context.Context, repository.MovementFilter, int, int) ([]*entity.MovementEntry, error) {
	return j.entries, nil
}

func (j *fakeJournal) Count(context.Context, repository.MovementFilter) (int64, error) {
	return int64(len(j.entries)), nil
}

func (j *fakeJournal) Summarize(context.Context, repository.MovementFilter) ([]*entity.MovementSummary, error) {
	return nil, nil
}

// SumByKey reimplementa la convención de signos del repositorio real: +change
// cuando la ubicación es destino, −change cuando es origen de un traslado, y
// change tal cual para entradas de una sola ubicación (ya viene firmado).
func (j *fakeJournal) SumByKey(_ context.Context, productID, locationID string) (int64, error) {
	var sum int64
	for _, e := range j.entries {
		if e.ProductID != productID {
			continue
		}
		if e.TransactionType == entity.TransactionTypeTransfer {
			if e.ToLocationID != nil && *e.ToLocationID == locationID {
				sum += e.QuantityChange
			}
			if e.FromLocationID != nil && *e.FromLocationID == locationID {
				sum -= e.QuantityChange
			}
			continue
		}
		if (e.ToLocationID != nil && *e.ToLocationID == locationID) ||
			(e.FromLocationID != nil && *e.FromLocationID == locationID) {
			sum += e.QuantityChange
		}
	}
	return sum, nil
}

// fakeTxRunner ejecuta fn y, si falla, restaura el estado previo del stock y
// del journal (equivalente al ROLLBACK de la transacción real). El mutex
// modela la serialización por bloqueo de fila de la BD.
type fakeTxRunner struct {
	mu      sync.Mutex
	stock   *fakeStockRepo
	journal *fakeJournal
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.StockLevelRepository, repository.MovementJournalRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapStock := r.stock.snapshot()
	snapEntries := make([]*entity.MovementEntry, len(r.journal.entries))
	copy(snapEntries, r.journal.entries)
	snapNextID := r.journal.nextID

	if err := fn(r.stock, r.journal); err != nil {
		r.stock.restore(snapStock)
		r.journal.entries = snapEntries
		r.journal.nextID = snapNextID
		return err
	}
	return nil
}

// Maestros de datos mínimos: solo lo que el coordinador consulta.

type fakeProductRepo struct{ products map[string]*entity.Product }

func (r *fakeProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(context.Context, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) List(context.Context, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (r *fakeProductRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.products[id]
	return ok, nil
}

type fakeLocationRepo struct{ ids map[string]bool }

func (r *fakeLocationRepo) Create(context.Context, *entity.Location) error { return nil }
func (r *fakeLocationRepo) GetByID(context.Context, string) (*entity.Location, error) {
	return nil, nil
}
func (r *fakeLocationRepo) List(context.Context) ([]*entity.Location, error) { return nil, nil }
func (r *fakeLocationRepo) ListByWarehouse(context.Context, string) ([]*entity.Location, error) {
	return nil, nil
}
func (r *fakeLocationRepo) Exists(_ context.Context, id string) (bool, error) {
	return r.ids[id], nil
}

type fakeUserRepo struct{ users map[string]*entity.User }

func (r *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}

// world agrupa todos los dobles con datos maestros precargados.
type world struct {
	coordinator *ledger.Coordinator
	stock       *fakeStockRepo
	journal     *fakeJournal
}

func newWorld() *world {
	stock := newFakeStockRepo()
	journal := newFakeJournal()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productA: {ID: productA, SKUCode: "SKU-A", Name: "Tornillo 3mm", UnitOfMeasure: "unidad", Active: true},
		productB: {ID: productB, SKUCode: "SKU-B", Name: "Cable UTP", UnitOfMeasure: "metro", Active: true},
	}}
	locations := &fakeLocationRepo{ids: map[string]bool{locationX: true, locationY: true}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		operario: {ID: operario, Email: "op@bodega.co", Role: "operator", IsActive: true},
		inactivo: {ID: inactivo, Email: "ex@bodega.co", Role: "operator", IsActive: false},
	}}

	return &world{
		coordinator: ledger.NewCoordinator(&fakeTxRunner{stock: stock, journal: journal}, products, locations, users),
		stock:       stock,
		journal:     journal,
	}
}

func (w *world) onHand(t *testing.T, productID, locationID string) int64 {
	t.Helper()
	lvl, ok := w.stock.levels[entity.StockKey{ProductID: productID, LocationID: locationID}]
	if !ok {
		return 0
	}
	return lvl.QuantityOnHand
}

// receive precarga stock vía el propio coordinador.
func (w *world) receive(t *testing.T, productID, locationID string, qty int64) {
	t.Helper()
	_, err := w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
		Type:              entity.TransactionTypeReceipt,
		ProductID:         productID,
		ToLocationID:      locationID,
		Quantity:          qty,
		ResponsibleUserID: operario,
	})
	require.NoError(t, err, "la recepción de precarga no debe fallar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepciones y entregas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_RecepcionCreaFilaYSuma(t *testing.T) {
	w := newWorld()

	res, err := w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
		Type:              entity.TransactionTypeReceipt,
		ProductID:         productA,
		ToLocationID:      locationX,
		Quantity:          50,
		ResponsibleUserID: operario,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), res.EffectiveChange, "una recepción nunca se acota")
	assert.Equal(t, int64(50), res.Stock().QuantityOnHand)
	assert.Equal(t, int64(50), w.onHand(t, productA, locationX), "la fila debe crearse al vuelo")
	assert.NotEmpty(t, res.TransactionRef, "sin referencia el coordinador genera una")

	require.Len(t, w.journal.entries, 1)
	e := w.journal.entries[0]
	assert.Nil(t, e.FromLocationID, "una recepción viene de la frontera externa")
	assert.Equal(t, locationX, *e.ToLocationID)
	assert.Equal(t, int64(50), e.QuantityChange)
	assert.Equal(t, "unidad", e.UnitOfMeasure, "la unidad se toma del maestro de productos")
}

func TestRecordMovement_EntregaDescuentaYJournaliza(t *testing.T) {
	w := newWorld()
	w.receive(t, productA, locationX, 100)

	res, err := w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
		Type:              entity.TransactionTypeDelivery,
		TransactionRef:    "DEL-0001",
		ProductID:         productA,
		FromLocationID:    locationX,
		Quantity:          30,
		ResponsibleUserID: operario,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(-30), res.EffectiveChange)
	assert.Equal(t, "DEL-0001", res.TransactionRef, "la referencia del caller se respeta")
	assert.Equal(t, int64(70), w.onHand(t, productA, locationX))

	e := w.journal.entries[len(w.journal.entries)-1]
	assert.Equal(t, int64(-30), e.QuantityChange)
	assert.Nil(t, e.ToLocationID, "una entrega sale hacia la frontera externa")
}

// La entrega que excede el stock se acota al piso en cero y el journal registra
// el delta EFECTIVO: sumar el journal siempre reconstruye el stock.
func TestRecordMovement_EntregaAcotadaAlPisoEnCero(t *testing.T) {
	w := newWorld()
	w.receive(t, productA, locationX, 10)

	res, err := w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
		Type:              entity.TransactionTypeDelivery,
		ProductID:         productA,
		FromLocationID:    locationX,
		Quantity:          25,
		ResponsibleUserID: operario,
	})
	require.NoError(t, err, "la entrega acotada se acepta, no se rechaza")

	assert.Equal(t, int64(-10), res.EffectiveChange, "el delta efectivo es lo que había, no lo pedido")
	assert.Equal(t, int64(0), w.onHand(t, productA, locationX))

	e := w.journal.entries[len(w.journal.entries)-1]
	assert.Equal(t, int64(-10), e.QuantityChange, "el journal registra el delta efectivo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_TrasladoMueveEntreUbicaciones(t *testing.T) {
	w := newWorld()
	w.receive(t, productA, locationX, 40)

	res, err := w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
		Type:              entity.TransactionTypeTransfer,
		ProductID:         productA,
		FromLocationID:    locationX,
		ToLocationID:      locationY,
		Quantity:          15,
		ResponsibleUserID: operario,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25), w.onHand(t, productA, locationX))
	assert.Equal(t, int64(15), w.onHand(t, productA, locationY))
	assert.Equal(t, int64(25), res.FromStock.QuantityOnHand)
	assert.Equal(t, int64(15), res.ToStock.QuantityOnHand)

	// Un traslado produce UNA entrada con ambas ubicaciones, no dos.
	require.Len(t, w.journal.entries, 2)
	e := w.journal.entries[1]
	assert.Equal(t, locationX, *e.FromLocationID)
	assert.Equal(t, locationY, *e.ToLocationID)
	assert.Equal(t, int64(15), e.QuantityChange, "la magnitud del traslado es positiva")
}

func TestRecordMovement_TrasladoSinStockSuficiente(t *testing.T) {
	w := newWorld()
	w.receive(t, productA, locationX, 5)

	_, err := w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
		Type:              entity.TransactionTypeTransfer,
		ProductID:         productA,
		FromLocationID:    locationX,
		ToLocationID:      locationY,
		Quantity:          20,
		ResponsibleUserID: operario,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "un traslado nunca se acota: se rechaza")

	assert.Equal(t, int64(5), w.onHand(t, productA, locationX), "el origen queda intacto")
	assert.Equal(t, int64(0), w.onHand(t, productA, locationY), "el destino queda intacto")
	assert.Len(t, w.journal.entries, 1, "el rechazo no journaliza nada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_AjusteRegistraLaDiferencia(t *testing.T) {
	w := newWorld()
	w.receive(t, productA, locationX, 80)

	observado := int64(72)
	res, err := w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
		Type:              entity.TransactionTypeAdjustment,
		ProductID:         productA,
		ToLocationID:      locationX,
		NewQuantity:       &observado,
		ResponsibleUserID: operario,
		Description:       "conteo físico semanal",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(-8), res.EffectiveChange, "se journaliza la diferencia, no el absoluto")
	assert.Equal(t, int64(72), w.onHand(t, productA, locationX))

	e := w.journal.entries[len(w.journal.entries)-1]
	assert.Equal(t, int64(-8), e.QuantityChange)
}

func TestRecordMovement_AjusteHaciaArriba(t *testing.T) {
	w := newWorld()
	w.receive(t, productA, locationX, 10)

	observado := int64(14)
	res, err := w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
		Type:              entity.TransactionTypeAdjustment,
		ProductID:         productA,
		ToLocationID:      locationX,
		NewQuantity:       &observado,
		ResponsibleUserID: operario,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), res.EffectiveChange)
	assert.Equal(t, int64(14), w.onHand(t, productA, locationX))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconstruibilidad y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

// Tras una mezcla de movimientos (incluida una entrega acotada), la suma
// firmada del journal por clave debe coincidir con el stock en mano.
func TestJournal_ReconstruyeElStock(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	w.receive(t, productA, locationX, 100)
	w.receive(t, productB, locationY, 30)

	_, err := w.coordinator.RecordMovement(ctx, ledger.MovementRequest{
		Type: entity.TransactionTypeTransfer, ProductID: productA,
		FromLocationID: locationX, ToLocationID: locationY,
		Quantity: 40, ResponsibleUserID: operario,
	})
	require.NoError(t, err)

	// Entrega acotada: pide 70 habiendo 60.
	_, err = w.coordinator.RecordMovement(ctx, ledger.MovementRequest{
		Type: entity.TransactionTypeDelivery, ProductID: productA,
		FromLocationID: locationX, Quantity: 70, ResponsibleUserID: operario,
	})
	require.NoError(t, err)

	observado := int64(35)
	_, err = w.coordinator.RecordMovement(ctx, ledger.MovementRequest{
		Type: entity.TransactionTypeAdjustment, ProductID: productA,
		ToLocationID: locationY, NewQuantity: &observado, ResponsibleUserID: operario,
	})
	require.NoError(t, err)

	for _, key := range []entity.StockKey{
		{ProductID: productA, LocationID: locationX},
		{ProductID: productA, LocationID: locationY},
		{ProductID: productB, LocationID: locationY},
	} {
		sum, err := w.journal.SumByKey(ctx, key.ProductID, key.LocationID)
		require.NoError(t, err)
		assert.Equal(t, w.onHand(t, key.ProductID, key.LocationID), sum,
			"la suma del journal debe reconstruir el stock de %s@%s", key.ProductID, key.LocationID)
	}
}

// Movimientos concurrentes sobre la misma clave no pierden actualizaciones:
// cada delta queda aplicado y journalizado exactamente una vez.
func TestRecordMovement_ConcurrenciaSinPerdidas(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = w.coordinator.RecordMovement(ctx, ledger.MovementRequest{
				Type: entity.TransactionTypeReceipt, ProductID: productA,
				ToLocationID: locationX, Quantity: 5, ResponsibleUserID: operario,
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}
	assert.Equal(t, int64(workers*5), w.onHand(t, productA, locationX))
	assert.Len(t, w.journal.entries, workers)

	sum, err := w.journal.SumByKey(ctx, productA, locationX)
	require.NoError(t, err)
	assert.Equal(t, int64(workers*5), sum)
}

// Con 30 en mano, una entrega de 20 y un ajuste a 25 concurrentes deben
// serializar: el final es 25 (si el ajuste va último) o 5 (si la entrega va
// última), nunca un valor intermedio, y el journal reconstruye el resultado.
func TestRecordMovement_EntregaYAjusteConcurrentesSerializan(t *testing.T) {
	for i := 0; i < 50; i++ {
		w := newWorld()
		w.receive(t, productA, locationX, 30)

		observado := int64(25)
		var wg sync.WaitGroup
		wg.Add(2)
		var errEntrega, errAjuste error
		go func() {
			defer wg.Done()
			_, errEntrega = w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
				Type: entity.TransactionTypeDelivery, ProductID: productA,
				FromLocationID: locationX, Quantity: 20, ResponsibleUserID: operario,
			})
		}()
		go func() {
			defer wg.Done()
			_, errAjuste = w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
				Type: entity.TransactionTypeAdjustment, ProductID: productA,
				ToLocationID: locationX, NewQuantity: &observado, ResponsibleUserID: operario,
			})
		}()
		wg.Wait()
		require.NoError(t, errEntrega)
		require.NoError(t, errAjuste)

		final := w.onHand(t, productA, locationX)
		assert.Contains(t, []int64{25, 5}, final, "solo las dos serializaciones son válidas")

		sum, err := w.journal.SumByKey(context.Background(), productA, locationX)
		require.NoError(t, err)
		assert.Equal(t, final, sum, "el journal reconstruye el resultado serializado")
	}
}

// Si el append al journal falla el movimiento completo se revierte: nunca hay
// stock mutado sin entrada journalizada.
func TestRecordMovement_FalloDelJournalRevierteTodo(t *testing.T) {
	w := newWorld()
	w.receive(t, productA, locationX, 50)

	w.journal.failAppend = true
	_, err := w.coordinator.RecordMovement(context.Background(), ledger.MovementRequest{
		Type: entity.TransactionTypeTransfer, ProductID: productA,
		FromLocationID: locationX, ToLocationID: locationY,
		Quantity: 20, ResponsibleUserID: operario,
	})
	require.Error(t, err)

	assert.Equal(t, int64(50), w.onHand(t, productA, locationX), "el origen se restaura")
	assert.Equal(t, int64(0), w.onHand(t, productA, locationY), "el destino se restaura")
	assert.Len(t, w.journal.entries, 1, "solo queda la recepción de precarga")
}

// ──────────────────────────────────────────────────────────────────────────────
// Matriz de rechazos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_Rechazos(t *testing.T) {
	observadoNegativo := int64(-1)

	cases := []struct {
		name    string
		req     ledger.MovementRequest
		wantErr error
	}{
		{
			name:    "tipo desconocido",
			req:     ledger.MovementRequest{Type: "teleport", ProductID: productA, ToLocationID: locationX, Quantity: 1, ResponsibleUserID: operario},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "cantidad cero",
			req:     ledger.MovementRequest{Type: entity.TransactionTypeReceipt, ProductID: productA, ToLocationID: locationX, Quantity: 0, ResponsibleUserID: operario},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "cantidad negativa",
			req:     ledger.MovementRequest{Type: entity.TransactionTypeDelivery, ProductID: productA, FromLocationID: locationX, Quantity: -5, ResponsibleUserID: operario},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "traslado al mismo lugar",
			req:     ledger.MovementRequest{Type: entity.TransactionTypeTransfer, ProductID: productA, FromLocationID: locationX, ToLocationID: locationX, Quantity: 5, ResponsibleUserID: operario},
			wantErr: domain.ErrInvalidTransfer,
		},
		{
			name:    "traslado sin origen",
			req:     ledger.MovementRequest{Type: entity.TransactionTypeTransfer, ProductID: productA, ToLocationID: locationY, Quantity: 5, ResponsibleUserID: operario},
			wantErr: domain.ErrInvalidTransfer,
		},
		{
			name:    "producto inexistente",
			req:     ledger.MovementRequest{Type: entity.TransactionTypeReceipt, ProductID: "99999999-0000-0000-0000-000000000000", ToLocationID: locationX, Quantity: 5, ResponsibleUserID: operario},
			wantErr: domain.ErrUnknownReference,
		},
		{
			name:    "ubicación inexistente",
			req:     ledger.MovementRequest{Type: entity.TransactionTypeReceipt, ProductID: productA, ToLocationID: "99999999-0000-0000-0000-000000000000", Quantity: 5, ResponsibleUserID: operario},
			wantErr: domain.ErrUnknownReference,
		},
		{
			name:    "usuario inactivo",
			req:     ledger.MovementRequest{Type: entity.TransactionTypeReceipt, ProductID: productA, ToLocationID: locationX, Quantity: 5, ResponsibleUserID: inactivo},
			wantErr: domain.ErrUnauthorizedActor,
		},
		{
			name:    "usuario inexistente",
			req:     ledger.MovementRequest{Type: entity.TransactionTypeReceipt, ProductID: productA, ToLocationID: locationX, Quantity: 5, ResponsibleUserID: "nadie"},
			wantErr: domain.ErrUnauthorizedActor,
		},
		{
			name:    "ajuste sin cantidad observada",
			req:     ledger.MovementRequest{Type: entity.TransactionTypeAdjustment, ProductID: productA, ToLocationID: locationX, ResponsibleUserID: operario},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "ajuste con cantidad negativa",
			req:     ledger.MovementRequest{Type: entity.TransactionTypeAdjustment, ProductID: productA, ToLocationID: locationX, NewQuantity: &observadoNegativo, ResponsibleUserID: operario},
			wantErr: domain.ErrInvalidQuantity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld()
			_, err := w.coordinator.RecordMovement(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, w.journal.entries, "un rechazo no debe journalizar nada")
			assert.Empty(t, w.stock.levels, "un rechazo no debe crear filas de stock")
		})
	}
}
