package planning

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
)

// AggregateRequirements agrupa por part_code sumando cantidades, conservando el orden de primera aparición.
// Una pieza usada por varias rutas del BOM debe evaluarse una sola vez: sumar faltantes por fila duplicaría el déficit.
func AggregateRequirements(rows []entity.PartRequirement) []entity.PartRequirement {
	index := make(map[string]int, len(rows))
	out := make([]entity.PartRequirement, 0, len(rows))
	for _, r := range rows {
		if i, ok := index[r.PartCode]; ok {
			out[i].UnitQuantity = out[i].UnitQuantity.Add(r.UnitQuantity)
			out[i].RequiredQuantity = out[i].RequiredQuantity.Add(r.RequiredQuantity)
			continue
		}
		index[r.PartCode] = len(out)
		out = append(out, r)
	}
	return out
}

// PartCodes devuelve los part_code de los requerimientos en el mismo orden.
func PartCodes(rows []entity.PartRequirement) []string {
	codes := make([]string, len(rows))
	for i, r := range rows {
		codes[i] = r.PartCode
	}
	return codes
}

// SumOrZero lee m[key] devolviendo cero si la clave no existe.
func SumOrZero(m map[string]decimal.Decimal, key string) decimal.Decimal {
	if v, ok := m[key]; ok {
		return v
	}
	return decimal.Zero
}
