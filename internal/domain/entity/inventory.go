package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory stock actual de una pieza. ReservedStock es el agregado desnormalizado de las reservas.
type Inventory struct {
	PartCode      string
	CurrentStock  decimal.Decimal
	ReservedStock decimal.Decimal
	UpdatedAt     time.Time
}
