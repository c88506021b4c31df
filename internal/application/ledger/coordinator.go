package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// Coordinator es la única puerta de mutación del ledger: valida la petición,
// bloquea la(s) fila(s) de stock afectadas, aplica los deltas y journaliza,
// todo dentro de una transacción (TxRunner). Por clave de stock hay a lo sumo
// una mutación en vuelo; claves disjuntas avanzan en paralelo.
//
// Máquina de estados por petición: Received -> Validated -> Applied ->
// Journaled -> Committed, o Received -> Rejected. No existe estado terminal
// parcialmente aplicado observable por los lectores.
type Coordinator struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
}

// NewCoordinator construye el coordinador.
func NewCoordinator(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
) *Coordinator {
	return &Coordinator{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
	}
}

// RecordMovement registra un movimiento. Cualquier fallo de validación
// devuelve un rechazo tipado sin mutación; un fallo durante aplicar+journalizar
// revierte la transacción completa y deja el estado previo intacto.
func (c *Coordinator) RecordMovement(ctx context.Context, req MovementRequest) (*MovementResult, error) {
	product, err := c.validate(ctx, &req)
	if err != nil {
		return nil, err
	}

	if req.TransactionRef == "" {
		req.TransactionRef = uuid.New().String()
	}
	now := time.Now().UTC()

	var result *MovementResult
	err = c.txRunner.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		journalRepo repository.MovementJournalRepository,
	) error {
		switch req.Type {
		case entity.TransactionTypeReceipt:
			result, err = c.doReceipt(ctx, stockRepo, journalRepo, product, req, now)
		case entity.TransactionTypeDelivery:
			result, err = c.doDelivery(ctx, stockRepo, journalRepo, product, req, now)
		case entity.TransactionTypeTransfer:
			result, err = c.doTransfer(ctx, stockRepo, journalRepo, product, req, now)
		case entity.TransactionTypeAdjustment:
			result, err = c.doAdjustment(ctx, stockRepo, journalRepo, product, req, now)
		default:
			return domain.ErrInvalidInput
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validate aplica las reglas de rechazo. Devuelve el producto para reutilizar
// su unidad de medida en la entrada del journal.
func (c *Coordinator) validate(ctx context.Context, req *MovementRequest) (*entity.Product, error) {
	if !entity.IsValidTransactionType(req.Type) {
		return nil, domain.ErrInvalidInput
	}

	switch req.Type {
	case entity.TransactionTypeAdjustment:
		if req.NewQuantity == nil || *req.NewQuantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if req.ToLocationID == "" {
			return nil, domain.ErrUnknownReference
		}
	case entity.TransactionTypeTransfer:
		if req.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if req.FromLocationID == "" || req.ToLocationID == "" || req.FromLocationID == req.ToLocationID {
			return nil, domain.ErrInvalidTransfer
		}
	case entity.TransactionTypeReceipt:
		if req.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if req.ToLocationID == "" {
			return nil, domain.ErrUnknownReference
		}
	case entity.TransactionTypeDelivery:
		if req.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if req.FromLocationID == "" {
			return nil, domain.ErrUnknownReference
		}
	}

	product, err := c.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownReference
	}

	for _, locID := range []string{req.FromLocationID, req.ToLocationID} {
		if locID == "" {
			continue
		}
		ok, err := c.locationRepo.Exists(ctx, locID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrUnknownReference
		}
	}

	// La verificación de identidad se delega al maestro de usuarios.
	user, err := c.userRepo.GetByID(ctx, req.ResponsibleUserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorizedActor
	}

	return product, nil
}

// doReceipt: entrada desde frontera externa. Suma en destino (en mano y libre)
// y journaliza una entrada con origen nulo. Un incremento nunca se acota.
func (c *Coordinator) doReceipt(
	ctx context.Context,
	stockRepo repository.StockLevelRepository,
	journalRepo repository.MovementJournalRepository,
	product *entity.Product,
	req MovementRequest,
	now time.Time,
) (*MovementResult, error) {
	if _, err := stockRepo.GetForUpdate(ctx, req.ProductID, req.ToLocationID); err != nil {
		return nil, err
	}
	lvl, err := stockRepo.ApplyDelta(ctx, req.ProductID, req.ToLocationID, req.Quantity, req.Quantity)
	if err != nil {
		return nil, err
	}

	entry := c.newEntry(product, req, now)
	entry.ToLocationID = &req.ToLocationID
	entry.QuantityChange = req.Quantity
	id, err := journalRepo.Append(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &MovementResult{
		MovementID:      id,
		TransactionRef:  req.TransactionRef,
		TransactionType: req.Type,
		EffectiveChange: req.Quantity,
		ToStock:         lvl,
	}, nil
}

// doDelivery: salida hacia frontera externa. Resta en origen con piso en cero
// y journaliza el delta efectivo (no el pedido) para que el journal siga
// reconstruyendo el stock.
func (c *Coordinator) doDelivery(
	ctx context.Context,
	stockRepo repository.StockLevelRepository,
	journalRepo repository.MovementJournalRepository,
	product *entity.Product,
	req MovementRequest,
	now time.Time,
) (*MovementResult, error) {
	cur, err := stockRepo.GetForUpdate(ctx, req.ProductID, req.FromLocationID)
	if err != nil {
		return nil, err
	}

	effective := req.Quantity
	if cur.QuantityOnHand < effective {
		effective = cur.QuantityOnHand
	}

	lvl, err := stockRepo.ApplyDelta(ctx, req.ProductID, req.FromLocationID, -req.Quantity, -req.Quantity)
	if err != nil {
		return nil, err
	}

	entry := c.newEntry(product, req, now)
	entry.FromLocationID = &req.FromLocationID
	entry.QuantityChange = -effective
	id, err := journalRepo.Append(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &MovementResult{
		MovementID:      id,
		TransactionRef:  req.TransactionRef,
		TransactionType: req.Type,
		EffectiveChange: -effective,
		FromStock:       lvl,
	}, nil
}

// doTransfer: resta en origen y suma en destino como unidad; journaliza UNA
// entrada con ambas ubicaciones. Las dos filas se bloquean en el orden global
// de claves para que dos traslados opuestos entre las mismas ubicaciones no
// se bloqueen mutuamente. Exige stock suficiente en origen: una entrada de dos
// lados no puede representar un origen acotado.
func (c *Coordinator) doTransfer(
	ctx context.Context,
	stockRepo repository.StockLevelRepository,
	journalRepo repository.MovementJournalRepository,
	product *entity.Product,
	req MovementRequest,
	now time.Time,
) (*MovementResult, error) {
	fromKey := entity.StockKey{ProductID: req.ProductID, LocationID: req.FromLocationID}
	toKey := entity.StockKey{ProductID: req.ProductID, LocationID: req.ToLocationID}

	first, second := fromKey, toKey
	if toKey.Less(fromKey) {
		first, second = toKey, fromKey
	}

	levels := make(map[entity.StockKey]*entity.StockLevel, 2)
	for _, k := range []entity.StockKey{first, second} {
		lvl, err := stockRepo.GetForUpdate(ctx, k.ProductID, k.LocationID)
		if err != nil {
			return nil, err
		}
		levels[k] = lvl
	}

	if levels[fromKey].QuantityOnHand < req.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	fromLvl, err := stockRepo.ApplyDelta(ctx, req.ProductID, req.FromLocationID, -req.Quantity, -req.Quantity)
	if err != nil {
		return nil, err
	}
	toLvl, err := stockRepo.ApplyDelta(ctx, req.ProductID, req.ToLocationID, req.Quantity, req.Quantity)
	if err != nil {
		return nil, err
	}

	entry := c.newEntry(product, req, now)
	entry.FromLocationID = &req.FromLocationID
	entry.ToLocationID = &req.ToLocationID
	entry.QuantityChange = req.Quantity
	id, err := journalRepo.Append(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &MovementResult{
		MovementID:      id,
		TransactionRef:  req.TransactionRef,
		TransactionType: req.Type,
		EffectiveChange: req.Quantity,
		FromStock:       fromLvl,
		ToStock:         toLvl,
	}, nil
}

// doAdjustment: el caller entrega la cantidad observada; se aplica y
// journaliza la diferencia contra lo que hay en mano, de modo que los ajustes
// componen con la reconstruibilidad del journal.
func (c *Coordinator) doAdjustment(
	ctx context.Context,
	stockRepo repository.StockLevelRepository,
	journalRepo repository.MovementJournalRepository,
	product *entity.Product,
	req MovementRequest,
	now time.Time,
) (*MovementResult, error) {
	cur, err := stockRepo.GetForUpdate(ctx, req.ProductID, req.ToLocationID)
	if err != nil {
		return nil, err
	}

	delta := *req.NewQuantity - cur.QuantityOnHand

	lvl, err := stockRepo.ApplyDelta(ctx, req.ProductID, req.ToLocationID, delta, delta)
	if err != nil {
		return nil, err
	}

	entry := c.newEntry(product, req, now)
	entry.ToLocationID = &req.ToLocationID
	entry.QuantityChange = delta
	id, err := journalRepo.Append(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &MovementResult{
		MovementID:      id,
		TransactionRef:  req.TransactionRef,
		TransactionType: req.Type,
		EffectiveChange: delta,
		ToStock:         lvl,
	}, nil
}

func (c *Coordinator) newEntry(product *entity.Product, req MovementRequest, now time.Time) *entity.MovementEntry {
	return &entity.MovementEntry{
		TransactionRef:    req.TransactionRef,
		TransactionType:   req.Type,
		ProductID:         req.ProductID,
		UnitOfMeasure:     product.UnitOfMeasure,
		ResponsibleUserID: req.ResponsibleUserID,
		Description:       req.Description,
		MoveTimestamp:     now,
	}
}
