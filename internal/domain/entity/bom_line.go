package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMLine cantidad de una pieza por unidad de producto.
// Las líneas se desactivan (IsActive=false) en lugar de borrarse para conservar historial.
type BOMLine struct {
	ID          int64
	ProductCode string
	PartCode    string
	Quantity    decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StationUsage consumo de una pieza en una estación de trabajo, por unidad de producto.
// Solo informativo: no participa en el cálculo de faltantes.
type StationUsage struct {
	ProductCode string
	StationCode string
	StationName string
	PartCode    string
	Quantity    decimal.Decimal
}
