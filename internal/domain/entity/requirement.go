package entity

import "github.com/shopspring/decimal"

// PartRequirement fila expandida del BOM para una cantidad planificada.
type PartRequirement struct {
	PartCode         string
	UnitQuantity     decimal.Decimal
	RequiredQuantity decimal.Decimal
}
