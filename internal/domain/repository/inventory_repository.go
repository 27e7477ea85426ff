package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
)

// InventoryRepository define el puerto para consultar/actualizar el stock por pieza.
// Las piezas sin fila en inventory se devuelven con stock cero.
type InventoryRepository interface {
	GetByParts(ctx context.Context, partCodes []string) (map[string]*entity.Inventory, error)
	// LockByParts bloquea las filas (SELECT FOR UPDATE) en orden de part_code.
	LockByParts(ctx context.Context, partCodes []string) (map[string]*entity.Inventory, error)
	SetCurrentStock(ctx context.Context, partCode string, currentStock decimal.Decimal) error
	// RefreshReservedStock recalcula reserved_stock = SUM(reserved_quantity) de las piezas indicadas.
	RefreshReservedStock(ctx context.Context, partCodes []string) error
}
