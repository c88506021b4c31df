package repository

import (
	"context"

	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// ProductRepository maestro de productos.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Exists(ctx context.Context, id string) (bool, error)
}

// WarehouseRepository maestro de bodegas.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	List(ctx context.Context) ([]*entity.Warehouse, error)
}

// LocationRepository maestro de ubicaciones.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context) ([]*entity.Location, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Location, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// UserRepository principales del sistema.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
