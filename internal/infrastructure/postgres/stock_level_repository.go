package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockLevelColumns = `
	sl.product_id, sl.location_id, sl.quantity_on_hand, sl.quantity_free_to_use,
	sl.min_stock_level, sl.max_stock_level, sl.last_updated_at,
	p.name, p.sku_code, p.unit_of_measure, l.name, w.name`

const stockLevelJoins = `
	FROM stock_levels sl
	JOIN products p ON p.id = sl.product_id
	JOIN locations l ON l.id = sl.location_id
	JOIN warehouses w ON w.id = l.warehouse_id`

func scanStockLevel(row pgx.Row) (*entity.StockLevel, error) {
	var s entity.StockLevel
	err := row.Scan(
		&s.ProductID, &s.LocationID, &s.QuantityOnHand, &s.QuantityFreeToUse,
		&s.MinStockLevel, &s.MaxStockLevel, &s.LastUpdatedAt,
		&s.ProductName, &s.SKUCode, &s.UnitOfMeasure, &s.LocationName, &s.WarehouseName,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene un nivel de stock o domain.ErrNotFound.
func (r *StockLevelRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	query := `SELECT` + stockLevelColumns + stockLevelJoins + `
		WHERE sl.product_id = $1 AND sl.location_id = $2`
	s, err := scanStockLevel(r.q.QueryRow(ctx, query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return s, nil
}

// ListByProduct lista niveles de un producto, ordenados por nombre de
// ubicación (estabilidad de presentación, no corrección).
func (r *StockLevelRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	query := `SELECT` + stockLevelColumns + stockLevelJoins + `
		WHERE sl.product_id = $1
		ORDER BY l.name`
	return r.list(ctx, query, productID)
}

// ListByLocation lista niveles de una ubicación ordenados por nombre de producto.
func (r *StockLevelRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.StockLevel, error) {
	query := `SELECT` + stockLevelColumns + stockLevelJoins + `
		WHERE sl.location_id = $1
		ORDER BY p.name`
	return r.list(ctx, query, locationID)
}

// ListAll lista todos los niveles (paginado) para la vista general de stock.
func (r *StockLevelRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.StockLevel, error) {
	query := `SELECT` + stockLevelColumns + stockLevelJoins + `
		ORDER BY p.name, l.name
		LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListLowStock devuelve los quiebres de stock, los más críticos primero
// (razón on_hand/min ascendente, luego nombre de producto).
func (r *StockLevelRepo) ListLowStock(ctx context.Context) ([]*entity.StockLevel, error) {
	query := `SELECT` + stockLevelColumns + stockLevelJoins + `
		WHERE sl.quantity_on_hand <= sl.min_stock_level AND sl.min_stock_level > 0
		ORDER BY (sl.quantity_on_hand::float / NULLIF(sl.min_stock_level, 0)), p.name`
	return r.list(ctx, query)
}

func (r *StockLevelRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockLevel
	for rows.Next() {
		s, err := scanStockLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetForUpdate crea la fila si no existe (creación perezosa con cantidades en
// cero) y la bloquea con SELECT FOR UPDATE. Si el lock_timeout de la
// transacción vence devuelve domain.ErrLockTimeout.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	insert := `
		INSERT INTO stock_levels (product_id, location_id, quantity_on_hand, quantity_free_to_use)
		VALUES ($1, $2, 0, 0)
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, productID, locationID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrUnknownReference
		}
		return nil, fmt.Errorf("ensure stock level: %w", err)
	}

	query := `
		SELECT product_id, location_id, quantity_on_hand, quantity_free_to_use,
		       min_stock_level, max_stock_level, last_updated_at
		FROM stock_levels
		WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.QuantityOnHand, &s.QuantityFreeToUse,
		&s.MinStockLevel, &s.MaxStockLevel, &s.LastUpdatedAt,
	)
	if err != nil {
		if isLockNotAvailable(err) {
			return nil, domain.ErrLockTimeout
		}
		return nil, fmt.Errorf("lock stock level: %w", err)
	}
	return &s, nil
}

// ApplyDelta aplica los deltas con piso en cero en una sola sentencia y
// devuelve el nivel resultante. Solo el coordinador del ledger la invoca,
// siempre con la fila ya bloqueada.
func (r *StockLevelRepo) ApplyDelta(ctx context.Context, productID, locationID string, onHandDelta, freeToUseDelta int64) (*entity.StockLevel, error) {
	query := `
		UPDATE stock_levels
		SET quantity_on_hand     = GREATEST(0, quantity_on_hand + $3),
		    quantity_free_to_use = GREATEST(0, quantity_free_to_use + $4),
		    last_updated_at      = now()
		WHERE product_id = $1 AND location_id = $2
		RETURNING product_id, location_id, quantity_on_hand, quantity_free_to_use,
		          min_stock_level, max_stock_level, last_updated_at`
	var s entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, locationID, onHandDelta, freeToUseDelta).Scan(
		&s.ProductID, &s.LocationID, &s.QuantityOnHand, &s.QuantityFreeToUse,
		&s.MinStockLevel, &s.MaxStockLevel, &s.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("apply stock delta: %w", err)
	}
	return &s, nil
}

// UpdateThresholds fija los umbrales min/max de alerta.
func (r *StockLevelRepo) UpdateThresholds(ctx context.Context, productID, locationID string, min int64, max *int64) error {
	query := `
		UPDATE stock_levels
		SET min_stock_level = $3, max_stock_level = $4, last_updated_at = now()
		WHERE product_id = $1 AND location_id = $2`
	tag, err := r.q.Exec(ctx, query, productID, locationID, min, max)
	if err != nil {
		return fmt.Errorf("update stock thresholds: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el registro solo cuando ambas cantidades son cero.
func (r *StockLevelRepo) Delete(ctx context.Context, productID, locationID string) error {
	query := `
		DELETE FROM stock_levels
		WHERE product_id = $1 AND location_id = $2
		  AND quantity_on_hand = 0 AND quantity_free_to_use = 0`
	tag, err := r.q.Exec(ctx, query, productID, locationID)
	if err != nil {
		return fmt.Errorf("delete stock level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguir inexistente de no vacío.
		var one int
		err := r.q.QueryRow(ctx,
			`SELECT 1 FROM stock_levels WHERE product_id = $1 AND location_id = $2`,
			productID, locationID).Scan(&one)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("check stock level: %w", err)
		}
		return domain.ErrStockNotEmpty
	}
	return nil
}
