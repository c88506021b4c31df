package entity

import "time"

// Tipos de transacción del journal de movimientos.
const (
	TransactionTypeReceipt    = "receipt"    // entrada desde proveedor (from = nil)
	TransactionTypeDelivery   = "delivery"   // salida hacia cliente (to = nil)
	TransactionTypeTransfer   = "transfer"   // traslado interno (from y to presentes)
	TransactionTypeAdjustment = "adjustment" // ajuste por conteo físico
)

// IsValidTransactionType valida el tipo de transacción.
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeReceipt, TransactionTypeDelivery, TransactionTypeTransfer, TransactionTypeAdjustment:
		return true
	}
	return false
}

// MovementEntry es un registro inmutable del journal: una vez escrito nunca se
// modifica ni se elimina; las correcciones se hacen con entradas compensatorias.
//
// QuantityChange lleva el delta EFECTIVO aplicado al stock en mano:
//   - receipt: +cantidad en ToLocationID (FromLocationID nil = frontera externa)
//   - delivery: delta negativo aplicado en FromLocationID (ToLocationID nil),
//     ya acotado por la política de piso en cero
//   - transfer: magnitud positiva; suma en ToLocationID y resta en FromLocationID
//   - adjustment: delta firmado (nuevo − actual) en ToLocationID
type MovementEntry struct {
	MovementID        int64 // asignado por el journal, monótonamente creciente
	TransactionRef    string
	TransactionType   string
	ProductID         string
	FromLocationID    *string
	ToLocationID      *string
	QuantityChange    int64
	UnitOfMeasure     string
	ResponsibleUserID string
	Description       string
	MoveTimestamp     time.Time

	// Campos de presentación (JOINs en consultas de historial).
	ProductName      string
	SKUCode          string
	FromLocationName string
	ToLocationName   string
	ResponsibleUser  string
}

// MovementSummary agrega el journal por tipo de transacción.
type MovementSummary struct {
	TransactionType      string
	MoveCount            int64
	TotalAbsQuantity     int64
	DistinctProductCount int64
}
