// Package catalog contiene los casos de uso del maestro de datos: productos,
// bodegas y ubicaciones.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nexwms/warehouse-api/internal/application/dto"
	"github.com/nexwms/warehouse-api/internal/domain"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/domain/repository"
)

// ProductUseCase CRUD del maestro de productos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create da de alta un producto. El SKU es único; domain.ErrDuplicate si ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.SKUCode == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	uom := in.UnitOfMeasure
	if uom == "" {
		uom = "unidad"
	}
	now := time.Now().UTC()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKUCode:       in.SKUCode,
		Name:          in.Name,
		Description:   in.Description,
		UnitOfMeasure: uom,
		Cost:          in.Cost,
		Price:         in.Price,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve un producto o domain.ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetBySKU devuelve un producto por su SKU o domain.ErrNotFound.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := uc.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List productos paginados por nombre.
func (uc *ProductUseCase) List(ctx context.Context, p dto.Pagination) ([]*entity.Product, error) {
	p.Normalize()
	return uc.productRepo.List(ctx, p.Limit, p.Offset)
}

// Update aplica los campos presentes de la petición sobre el producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	p, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.UnitOfMeasure != nil {
		p.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Cost = *in.Cost
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// WarehouseUseCase maestro de bodegas y sus ubicaciones.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.LocationRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository, locationRepo repository.LocationRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo, locationRepo: locationRepo}
}

// CreateWarehouse da de alta una bodega.
func (uc *WarehouseUseCase) CreateWarehouse(ctx context.Context, in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	if in.Name == "" || in.ShortCode == "" {
		return nil, domain.ErrInvalidInput
	}
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		ShortCode: in.ShortCode,
		Address:   in.Address,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.warehouseRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// GetWarehouse devuelve una bodega o domain.ErrNotFound.
func (uc *WarehouseUseCase) GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

// ListWarehouses todas las bodegas.
func (uc *WarehouseUseCase) ListWarehouses(ctx context.Context) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.List(ctx)
}

// CreateLocation da de alta una ubicación dentro de una bodega existente.
func (uc *WarehouseUseCase) CreateLocation(ctx context.Context, in dto.CreateLocationRequest) (*entity.Location, error) {
	if in.WarehouseID == "" || in.Name == "" || in.ShortCode == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.GetWarehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	l := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: in.WarehouseID,
		Name:        in.Name,
		ShortCode:   in.ShortCode,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.locationRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ListLocations todas las ubicaciones, o las de una bodega si warehouseID no es vacío.
func (uc *WarehouseUseCase) ListLocations(ctx context.Context, warehouseID string) ([]*entity.Location, error) {
	if warehouseID != "" {
		return uc.locationRepo.ListByWarehouse(ctx, warehouseID)
	}
	return uc.locationRepo.List(ctx)
}
