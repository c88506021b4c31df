package entity

import "time"

// Warehouse bodega física; agrupa ubicaciones.
type Warehouse struct {
	ID        string
	Name      string
	ShortCode string
	Address   string
	CreatedAt time.Time
}

// Location ubicación dentro de una bodega (estante, pasillo, muelle).
// Es la granularidad a la que el ledger lleva cantidades.
type Location struct {
	ID          string
	WarehouseID string
	Name        string
	ShortCode   string
	CreatedAt   time.Time
}
