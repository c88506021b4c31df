package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	SKUCode       string          `json:"sku_code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Cost          decimal.Decimal `json:"cost"`
	Price         decimal.Decimal `json:"price"`
}

// UpdateProductRequest campos modificables de un producto.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	UnitOfMeasure *string          `json:"unit_of_measure,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

// ProductResponse producto del maestro.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKUCode       string          `json:"sku_code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Cost          decimal.Decimal `json:"cost"`
	Price         decimal.Decimal `json:"price"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductFromEntity mapea la entidad al DTO.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SKUCode:       p.SKUCode,
		Name:          p.Name,
		Description:   p.Description,
		UnitOfMeasure: p.UnitOfMeasure,
		Cost:          p.Cost,
		Price:         p.Price,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
	Address   string `json:"address"`
}

// WarehouseResponse bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ShortCode string    `json:"short_code"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// WarehouseFromEntity mapea la entidad al DTO.
func WarehouseFromEntity(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		ShortCode: w.ShortCode,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
	}
}

// CreateLocationRequest alta de ubicación dentro de una bodega.
type CreateLocationRequest struct {
	WarehouseID string `json:"warehouse_id"`
	Name        string `json:"name"`
	ShortCode   string `json:"short_code"`
}

// LocationResponse ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Name        string    `json:"name"`
	ShortCode   string    `json:"short_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// LocationFromEntity mapea la entidad al DTO.
func LocationFromEntity(l *entity.Location) LocationResponse {
	return LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Name:        l.Name,
		ShortCode:   l.ShortCode,
		CreatedAt:   l.CreatedAt,
	}
}
