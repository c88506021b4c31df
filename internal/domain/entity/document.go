package entity

import "time"

// Estados del flujo documental. Un documento solo muta el ledger al pasar a
// "done" (confirmación de recepción / validación de entrega / cierre de traslado).
const (
	DocumentStatusDraft     = "draft"
	DocumentStatusReady     = "ready"
	DocumentStatusDone      = "done"
	DocumentStatusCancelled = "cancelled"
)

// IsValidDocumentStatus valida el estado documental.
func IsValidDocumentStatus(s string) bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusReady, DocumentStatusDone, DocumentStatusCancelled:
		return true
	}
	return false
}

// Receipt orden de recepción desde un proveedor. Al confirmarse genera un
// movimiento receipt por cada línea, todas con el mismo transaction_ref.
type Receipt struct {
	ID                string
	Reference         string
	ScheduleDate      time.Time
	Counterparty      string // proveedor (frontera externa del ledger)
	ToLocationID      string
	ResponsibleUserID string
	Status            string
	ValidatedAt       *time.Time
	CreatedAt         time.Time
	Items             []DocumentItem
}

// Delivery orden de entrega hacia un cliente. Al validarse genera un
// movimiento delivery por cada línea.
type Delivery struct {
	ID                string
	Reference         string
	ScheduleDate      time.Time
	Counterparty      string // cliente
	FromLocationID    string
	ResponsibleUserID string
	Status            string
	ValidatedAt       *time.Time
	CreatedAt         time.Time
	Items             []DocumentItem
}

// DocumentItem línea de un documento (recepción o entrega).
type DocumentItem struct {
	ID         string
	DocumentID string
	LineNo     int
	ProductID  string
	Quantity   int64
}

// TransferOrder orden de traslado interno de un producto entre dos ubicaciones.
type TransferOrder struct {
	ID                string
	Reference         string
	ProductID         string
	FromLocationID    string
	ToLocationID      string
	Quantity          int64
	ResponsibleUserID string
	Status            string
	TransferDate      time.Time
	CreatedAt         time.Time
}

// StockAdjustment registro de un ajuste por conteo físico: cantidad observada
// contra cantidad en sistema. El ledger registra la diferencia, no el absoluto.
type StockAdjustment struct {
	ID                string
	AdjustmentDate    time.Time
	ProductID         string
	LocationID        string
	OldQuantity       int64
	NewQuantity       int64
	Difference        int64
	Reason            string
	ResponsibleUserID string
	CreatedAt         time.Time
}
