package repository

import (
	"context"

	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// ReceiptRepository órdenes de recepción con sus líneas.
type ReceiptRepository interface {
	Create(ctx context.Context, r *entity.Receipt) error
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Receipt, error)
	// UpdateStatus cambia el estado; fija validated_at al pasar a done.
	UpdateStatus(ctx context.Context, id, status string) error
}

// DeliveryRepository órdenes de entrega con sus líneas.
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Delivery, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// TransferOrderRepository órdenes de traslado interno.
type TransferOrderRepository interface {
	Create(ctx context.Context, t *entity.TransferOrder) error
	GetByID(ctx context.Context, id string) (*entity.TransferOrder, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.TransferOrder, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// AdjustmentRepository registros de ajustes por conteo físico.
type AdjustmentRepository interface {
	Create(ctx context.Context, a *entity.StockAdjustment) error
	GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockAdjustment, error)
}
