package repository

import (
	"context"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
)

// BOMRepository define el puerto de lectura del BOM.
type BOMRepository interface {
	// ListActiveLines devuelve las líneas activas del producto cuyas piezas también están activas.
	ListActiveLines(ctx context.Context, productCode string) ([]*entity.BOMLine, error)
}

// StationRepository mapeo BOM → estación de trabajo (informativo).
type StationRepository interface {
	ListUsages(ctx context.Context, productCode string) ([]*entity.StationUsage, error)
}
