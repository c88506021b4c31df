package entity

import "time"

// StockKey identifica un registro de stock: (producto, ubicación).
type StockKey struct {
	ProductID  string
	LocationID string
}

// Less define el orden global de adquisición de bloqueos por clave
// (ascendente por producto y luego ubicación). Los traslados bloquean sus dos
// claves en este orden para evitar deadlocks entre traslados opuestos.
func (k StockKey) Less(other StockKey) bool {
	if k.ProductID != other.ProductID {
		return k.ProductID < other.ProductID
	}
	return k.LocationID < other.LocationID
}

// StockLevel representa la cantidad actual de un producto en una ubicación.
// Es una proyección materializada del journal de movimientos: la cantidad en
// mano siempre debe ser reconstruible sumando los movimientos de su clave.
type StockLevel struct {
	ProductID         string
	LocationID        string
	QuantityOnHand    int64 // invariante: >= 0
	QuantityFreeToUse int64 // invariante: >= 0; disponible para compromisos de salida
	MinStockLevel     int64
	MaxStockLevel     *int64
	LastUpdatedAt     time.Time

	// Campos de presentación poblados por las consultas con JOIN (listados).
	ProductName   string
	SKUCode       string
	UnitOfMeasure string
	LocationName  string
	WarehouseName string
}

// Key devuelve la clave de stock del registro.
func (s *StockLevel) Key() StockKey {
	return StockKey{ProductID: s.ProductID, LocationID: s.LocationID}
}

// IsEmpty indica si ambas cantidades son cero (condición para eliminar el registro).
func (s *StockLevel) IsEmpty() bool {
	return s.QuantityOnHand == 0 && s.QuantityFreeToUse == 0
}

// IsBelowMin indica si el stock en mano está en o bajo el mínimo configurado.
func (s *StockLevel) IsBelowMin() bool {
	return s.MinStockLevel > 0 && s.QuantityOnHand <= s.MinStockLevel
}
