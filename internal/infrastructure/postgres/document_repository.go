package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)
var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)
var _ repository.TransferOrderRepository = (*TransferOrderRepo)(nil)
var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// mapDocErr traduce errores de FK/único de los documentos.
func mapDocErr(err error, op string) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return domain.ErrUnknownReference
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ── Recepciones ───────────────────────────────────────────────────────────────

// ReceiptRepo órdenes de recepción sobre PostgreSQL.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

func (r *ReceiptRepo) Create(ctx context.Context, rec *entity.Receipt) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Status == "" {
		rec.Status = entity.DocumentStatusDraft
	}
	query := `
		INSERT INTO receipts (id, reference, schedule_date, counterparty, to_location_id,
		                      responsible_user_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.Reference, rec.ScheduleDate, rec.Counterparty, rec.ToLocationID,
		rec.ResponsibleUserID, rec.Status)
	if err != nil {
		return mapDocErr(err, "create receipt")
	}
	for i := range rec.Items {
		if err := insertItem(ctx, r.q, "receipt_items", "receipt_id", rec.ID, &rec.Items[i], i+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	query := `
		SELECT id, reference, schedule_date, counterparty, to_location_id,
		       responsible_user_id, status, validated_at, created_at
		FROM receipts WHERE id = $1`
	var rec entity.Receipt
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.Reference, &rec.ScheduleDate, &rec.Counterparty, &rec.ToLocationID,
		&rec.ResponsibleUserID, &rec.Status, &rec.ValidatedAt, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	items, err := listItems(ctx, r.q, "receipt_items", "receipt_id", id)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return &rec, nil
}

func (r *ReceiptRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Receipt, error) {
	query := `
		SELECT id, reference, schedule_date, counterparty, to_location_id,
		       responsible_user_id, status, validated_at, created_at
		FROM receipts`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var out []*entity.Receipt
	for rows.Next() {
		var rec entity.Receipt
		if err := rows.Scan(&rec.ID, &rec.Reference, &rec.ScheduleDate, &rec.Counterparty,
			&rec.ToLocationID, &rec.ResponsibleUserID, &rec.Status, &rec.ValidatedAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (r *ReceiptRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return updateDocStatus(ctx, r.q, "receipts", id, status)
}

// ── Entregas ──────────────────────────────────────────────────────────────────

// DeliveryRepo órdenes de entrega sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Status == "" {
		d.Status = entity.DocumentStatusDraft
	}
	query := `
		INSERT INTO deliveries (id, reference, schedule_date, counterparty, from_location_id,
		                        responsible_user_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Reference, d.ScheduleDate, d.Counterparty, d.FromLocationID,
		d.ResponsibleUserID, d.Status)
	if err != nil {
		return mapDocErr(err, "create delivery")
	}
	for i := range d.Items {
		if err := insertItem(ctx, r.q, "delivery_items", "delivery_id", d.ID, &d.Items[i], i+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	query := `
		SELECT id, reference, schedule_date, counterparty, from_location_id,
		       responsible_user_id, status, validated_at, created_at
		FROM deliveries WHERE id = $1`
	var d entity.Delivery
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Reference, &d.ScheduleDate, &d.Counterparty, &d.FromLocationID,
		&d.ResponsibleUserID, &d.Status, &d.ValidatedAt, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	items, err := listItems(ctx, r.q, "delivery_items", "delivery_id", id)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

func (r *DeliveryRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Delivery, error) {
	query := `
		SELECT id, reference, schedule_date, counterparty, from_location_id,
		       responsible_user_id, status, validated_at, created_at
		FROM deliveries`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var out []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.Reference, &d.ScheduleDate, &d.Counterparty,
			&d.FromLocationID, &d.ResponsibleUserID, &d.Status, &d.ValidatedAt, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *DeliveryRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return updateDocStatus(ctx, r.q, "deliveries", id, status)
}

// ── Traslados ─────────────────────────────────────────────────────────────────

// TransferOrderRepo órdenes de traslado interno sobre PostgreSQL.
type TransferOrderRepo struct {
	q Querier
}

// NewTransferOrderRepository construye el adaptador.
func NewTransferOrderRepository(q Querier) *TransferOrderRepo {
	return &TransferOrderRepo{q: q}
}

func (r *TransferOrderRepo) Create(ctx context.Context, t *entity.TransferOrder) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = entity.DocumentStatusDraft
	}
	query := `
		INSERT INTO internal_transfers (id, reference, product_id, from_location_id, to_location_id,
		                                quantity, responsible_user_id, status, transfer_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Reference, t.ProductID, t.FromLocationID, t.ToLocationID,
		t.Quantity, t.ResponsibleUserID, t.Status, t.TransferDate)
	if err != nil {
		return mapDocErr(err, "create transfer order")
	}
	return nil
}

func (r *TransferOrderRepo) GetByID(ctx context.Context, id string) (*entity.TransferOrder, error) {
	query := `
		SELECT id, reference, product_id, from_location_id, to_location_id,
		       quantity, responsible_user_id, status, transfer_date, created_at
		FROM internal_transfers WHERE id = $1`
	var t entity.TransferOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Reference, &t.ProductID, &t.FromLocationID, &t.ToLocationID,
		&t.Quantity, &t.ResponsibleUserID, &t.Status, &t.TransferDate, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get transfer order: %w", err)
	}
	return &t, nil
}

func (r *TransferOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.TransferOrder, error) {
	query := `
		SELECT id, reference, product_id, from_location_id, to_location_id,
		       quantity, responsible_user_id, status, transfer_date, created_at
		FROM internal_transfers`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfer orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.TransferOrder
	for rows.Next() {
		var t entity.TransferOrder
		if err := rows.Scan(&t.ID, &t.Reference, &t.ProductID, &t.FromLocationID, &t.ToLocationID,
			&t.Quantity, &t.ResponsibleUserID, &t.Status, &t.TransferDate, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer order: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *TransferOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return updateDocStatus(ctx, r.q, "internal_transfers", id, status)
}

// ── Ajustes ───────────────────────────────────────────────────────────────────

// AdjustmentRepo registros de ajuste por conteo físico sobre PostgreSQL.
// La columna difference es generada (new_quantity - old_quantity).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.StockAdjustment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_adjustments (id, adjustment_date, product_id, location_id,
		                               old_quantity, new_quantity, reason, responsible_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING difference, created_at`
	err := r.q.QueryRow(ctx, query,
		a.ID, a.AdjustmentDate, a.ProductID, a.LocationID,
		a.OldQuantity, a.NewQuantity, a.Reason, a.ResponsibleUserID,
	).Scan(&a.Difference, &a.CreatedAt)
	if err != nil {
		return mapDocErr(err, "create adjustment")
	}
	return nil
}

func (r *AdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error) {
	query := `
		SELECT id, adjustment_date, product_id, location_id, old_quantity, new_quantity,
		       difference, reason, responsible_user_id, created_at
		FROM stock_adjustments WHERE id = $1`
	var a entity.StockAdjustment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.AdjustmentDate, &a.ProductID, &a.LocationID, &a.OldQuantity, &a.NewQuantity,
		&a.Difference, &a.Reason, &a.ResponsibleUserID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return &a, nil
}

func (r *AdjustmentRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT id, adjustment_date, product_id, location_id, old_quantity, new_quantity,
		       difference, reason, responsible_user_id, created_at
		FROM stock_adjustments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.AdjustmentDate, &a.ProductID, &a.LocationID, &a.OldQuantity,
			&a.NewQuantity, &a.Difference, &a.Reason, &a.ResponsibleUserID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// ── Helpers de líneas y estado ────────────────────────────────────────────────

func insertItem(ctx context.Context, q Querier, table, fkColumn, docID string, item *entity.DocumentItem, lineNo int) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.DocumentID = docID
	item.LineNo = lineNo
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, line_no, product_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`, table, fkColumn)
	if _, err := q.Exec(ctx, query, item.ID, docID, lineNo, item.ProductID, item.Quantity); err != nil {
		return mapDocErr(err, "create document item")
	}
	return nil
}

func listItems(ctx context.Context, q Querier, table, fkColumn, docID string) ([]entity.DocumentItem, error) {
	query := fmt.Sprintf(`
		SELECT id, %s, line_no, product_id, quantity
		FROM %s WHERE %s = $1 ORDER BY line_no`, fkColumn, table, fkColumn)
	rows, err := q.Query(ctx, query, docID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()
	var out []entity.DocumentItem
	for rows.Next() {
		var it entity.DocumentItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.LineNo, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func updateDocStatus(ctx context.Context, q Querier, table, id, status string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $2,
		    validated_at = CASE WHEN $2 = 'done' THEN now() ELSE validated_at END
		WHERE id = $1`, table)
	if table == "internal_transfers" {
		// Los traslados no llevan validated_at.
		query = fmt.Sprintf(`UPDATE %s SET status = $2 WHERE id = $1`, table)
	}
	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update %s status: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
