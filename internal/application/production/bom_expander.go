package production

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/domain"
	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

// ExpandBOM devuelve una fila por línea activa del BOM con required = unit_quantity × plannedQuantity.
// Las filas no se agrupan: una pieza presente en varias líneas aparece varias veces.
// Un producto sin BOM activo devuelve lista vacía y error nil; el caller decide qué significa.
func ExpandBOM(ctx context.Context, bom repository.BOMRepository, productCode string, plannedQuantity int) ([]entity.PartRequirement, error) {
	if plannedQuantity <= 0 {
		return nil, domain.Validationf("planned_quantity debe ser mayor que 0 (recibido %d)", plannedQuantity)
	}
	lines, err := bom.ListActiveLines(ctx, productCode)
	if err != nil {
		return nil, fmt.Errorf("expandir BOM de %s: %w", productCode, err)
	}

	qty := decimal.NewFromInt(int64(plannedQuantity))
	rows := make([]entity.PartRequirement, 0, len(lines))
	for _, l := range lines {
		if !l.IsActive {
			continue
		}
		rows = append(rows, entity.PartRequirement{
			PartCode:         l.PartCode,
			UnitQuantity:     l.Quantity,
			RequiredQuantity: l.Quantity.Mul(qty),
		})
	}
	return rows, nil
}
