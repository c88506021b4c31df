package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El coordinador del ledger devuelve siempre uno de estos; nunca deja
// estado parcialmente aplicado.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Rechazos de validación del coordinador (errores del caller, sin mutación).
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInvalidTransfer   = errors.New("traslado inválido: origen y destino deben existir y ser distintos")
	ErrUnknownReference  = errors.New("producto, ubicación o usuario inexistente")
	ErrUnauthorizedActor = errors.New("usuario responsable inactivo o inexistente")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Errores reintenables de la capa de almacenamiento.
	ErrLockTimeout = errors.New("no se obtuvo el bloqueo de la fila de stock a tiempo")

	// Guardas de ciclo de vida.
	ErrStockNotEmpty = errors.New("el nivel de stock tiene cantidades distintas de cero")
)
