package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product maestro de productos. Cost y Price se usan para valorización de
// inventario en el dashboard; las cantidades del ledger son enteras.
type Product struct {
	ID            string
	SKUCode       string
	Name          string
	Description   string
	UnitOfMeasure string
	Cost          decimal.Decimal
	Price         decimal.Decimal
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
