package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

var _ repository.MovementJournalRepository = (*MovementJournalRepo)(nil)

// MovementJournalRepo journal append-only sobre PostgreSQL. Este adaptador no
// contiene ningún UPDATE ni DELETE sobre move_history: la historia es inmutable.
type MovementJournalRepo struct {
	q Querier
}

// NewMovementJournalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementJournalRepository(q Querier) *MovementJournalRepo {
	return &MovementJournalRepo{q: q}
}

// Append persiste la entrada y devuelve el move_id monótono (BIGSERIAL).
// La única validación es referencial: FKs a producto, ubicaciones y usuario.
func (r *MovementJournalRepo) Append(ctx context.Context, e *entity.MovementEntry) (int64, error) {
	query := `
		INSERT INTO move_history (transaction_ref, transaction_type, product_id,
		                          from_location_id, to_location_id, quantity_change,
		                          unit_of_measure, responsible_user_id, description,
		                          move_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, now()))
		RETURNING move_id, move_timestamp`
	var ts *time.Time
	if !e.MoveTimestamp.IsZero() {
		ts = &e.MoveTimestamp
	}
	err := r.q.QueryRow(ctx, query,
		e.TransactionRef, e.TransactionType, e.ProductID,
		e.FromLocationID, e.ToLocationID, e.QuantityChange,
		e.UnitOfMeasure, e.ResponsibleUserID, e.Description, ts,
	).Scan(&e.MovementID, &e.MoveTimestamp)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrUnknownReference
		}
		return 0, fmt.Errorf("append movement: %w", err)
	}
	return e.MovementID, nil
}

const movementColumns = `
	mh.move_id, mh.transaction_ref, mh.transaction_type, mh.product_id,
	mh.from_location_id, mh.to_location_id, mh.quantity_change,
	mh.unit_of_measure, mh.responsible_user_id, mh.description, mh.move_timestamp,
	p.name, p.sku_code,
	COALESCE(fl.name, ''), COALESCE(tl.name, ''),
	u.first_name || ' ' || u.last_name`

const movementJoins = `
	FROM move_history mh
	JOIN products p ON p.id = mh.product_id
	LEFT JOIN locations fl ON fl.id = mh.from_location_id
	LEFT JOIN locations tl ON tl.id = mh.to_location_id
	JOIN users u ON u.id = mh.responsible_user_id`

func scanMovement(row pgx.Row) (*entity.MovementEntry, error) {
	var m entity.MovementEntry
	err := row.Scan(
		&m.MovementID, &m.TransactionRef, &m.TransactionType, &m.ProductID,
		&m.FromLocationID, &m.ToLocationID, &m.QuantityChange,
		&m.UnitOfMeasure, &m.ResponsibleUserID, &m.Description, &m.MoveTimestamp,
		&m.ProductName, &m.SKUCode,
		&m.FromLocationName, &m.ToLocationName,
		&m.ResponsibleUser,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID obtiene una entrada o domain.ErrNotFound.
func (r *MovementJournalRepo) GetByID(ctx context.Context, movementID int64) (*entity.MovementEntry, error) {
	query := `SELECT` + movementColumns + movementJoins + ` WHERE mh.move_id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// filterClause arma el WHERE dinámico del filtro. La ubicación casa contra
// origen O destino (mismo criterio que el historial del sistema original).
func filterClause(f repository.MovementFilter, startPos int) (string, []any) {
	clause := ""
	var args []any
	pos := startPos
	if f.ProductID != "" {
		clause += fmt.Sprintf(" AND mh.product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.LocationID != "" {
		clause += fmt.Sprintf(" AND (mh.from_location_id = $%d OR mh.to_location_id = $%d)", pos, pos)
		args = append(args, f.LocationID)
		pos++
	}
	if f.TransactionType != "" {
		clause += fmt.Sprintf(" AND mh.transaction_type = $%d", pos)
		args = append(args, f.TransactionType)
		pos++
	}
	if f.From != nil {
		clause += fmt.Sprintf(" AND mh.move_timestamp >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		clause += fmt.Sprintf(" AND mh.move_timestamp <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	return clause, args
}

// List devuelve entradas por timestamp descendente, paginadas. Reejecutar la
// consulta con el mismo filtro y sin mutaciones intermedias devuelve lo mismo.
func (r *MovementJournalRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.MovementEntry, error) {
	clause, args := filterClause(f, 1)
	query := `SELECT` + movementColumns + movementJoins + ` WHERE 1=1` + clause
	query += fmt.Sprintf(" ORDER BY mh.move_timestamp DESC, mh.move_id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.MovementEntry
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Count total de entradas del filtro (paginación).
func (r *MovementJournalRepo) Count(ctx context.Context, f repository.MovementFilter) (int64, error) {
	clause, args := filterClause(f, 1)
	query := `SELECT COUNT(*) FROM move_history mh WHERE 1=1` + clause
	var total int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

// Summarize agrega el journal por tipo: conteo, cantidad absoluta y productos
// distintos. Independiente del almacén de niveles.
func (r *MovementJournalRepo) Summarize(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementSummary, error) {
	clause, args := filterClause(f, 1)
	query := `
		SELECT mh.transaction_type,
		       COUNT(*),
		       COALESCE(SUM(ABS(mh.quantity_change)), 0),
		       COUNT(DISTINCT mh.product_id)
		FROM move_history mh
		WHERE 1=1` + clause + `
		GROUP BY mh.transaction_type
		ORDER BY mh.transaction_type`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summarize movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.MovementSummary
	for rows.Next() {
		var s entity.MovementSummary
		if err := rows.Scan(&s.TransactionType, &s.MoveCount, &s.TotalAbsQuantity, &s.DistinctProductCount); err != nil {
			return nil, fmt.Errorf("scan movement summary: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// SumByKey suma firmada de los movimientos de una clave:
//   - destino == ubicación: +change (entradas, ajustes, destino de traslado)
//   - origen == ubicación con destino presente (traslado): -change
//   - origen == ubicación sin destino (entrega): change ya viene firmado
func (r *MovementJournalRepo) SumByKey(ctx context.Context, productID, locationID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE
			WHEN mh.to_location_id = $2 THEN mh.quantity_change
			WHEN mh.from_location_id = $2 AND mh.to_location_id IS NULL THEN mh.quantity_change
			WHEN mh.from_location_id = $2 THEN -mh.quantity_change
			ELSE 0
		END), 0)
		FROM move_history mh
		WHERE mh.product_id = $1
		  AND (mh.from_location_id = $2 OR mh.to_location_id = $2)`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID, locationID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum movements by key: %w", err)
	}
	return sum, nil
}
