package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func collectInventory(rows pgx.Rows, partCodes []string) (map[string]*entity.Inventory, error) {
	defer rows.Close()
	out := make(map[string]*entity.Inventory, len(partCodes))
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.PartCode, &inv.CurrentStock, &inv.ReservedStock, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out[inv.PartCode] = &inv
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Sin fila = stock cero.
	for _, code := range partCodes {
		if _, ok := out[code]; !ok {
			out[code] = &entity.Inventory{PartCode: code, CurrentStock: decimal.Zero, ReservedStock: decimal.Zero}
		}
	}
	return out, nil
}

// GetByParts stock de las piezas indicadas.
func (r *InventoryRepo) GetByParts(ctx context.Context, partCodes []string) (map[string]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT part_code, current_stock, reserved_stock, updated_at
		FROM inventory WHERE part_code = ANY($1)`, partCodes)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return collectInventory(rows, partCodes)
}

// LockByParts crea en cero las filas que falten y las bloquea (SELECT FOR UPDATE) en orden de part_code.
func (r *InventoryRepo) LockByParts(ctx context.Context, partCodes []string) (map[string]*entity.Inventory, error) {
	partCodes = lockOrder(partCodes)
	if _, err := r.q.Exec(ctx, `
		INSERT INTO inventory (part_code)
		SELECT code FROM unnest($1::text[]) AS code
		ORDER BY code
		ON CONFLICT (part_code) DO NOTHING`, partCodes); err != nil {
		return nil, fmt.Errorf("ensure inventory rows: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT part_code, current_stock, reserved_stock, updated_at
		FROM inventory WHERE part_code = ANY($1)
		ORDER BY part_code
		FOR UPDATE`, partCodes)
	if err != nil {
		return nil, fmt.Errorf("lock inventory: %w", err)
	}
	return collectInventory(rows, partCodes)
}

// SetCurrentStock inserta o actualiza current_stock de la pieza.
func (r *InventoryRepo) SetCurrentStock(ctx context.Context, partCode string, currentStock decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (part_code, current_stock, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (part_code)
		DO UPDATE SET current_stock = EXCLUDED.current_stock, updated_at = now()`, partCode, currentStock)
	if err != nil {
		return fmt.Errorf("set current stock: %w", err)
	}
	return nil
}

// RefreshReservedStock recalcula reserved_stock = SUM(reserved_quantity) de las piezas indicadas.
// Las filas se insertan o bloquean en orden de part_code, igual que LockByParts.
func (r *InventoryRepo) RefreshReservedStock(ctx context.Context, partCodes []string) error {
	if len(partCodes) == 0 {
		return nil
	}
	partCodes = lockOrder(partCodes)
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (part_code, reserved_stock, updated_at)
		SELECT c.code,
		       COALESCE((SELECT SUM(reserved_quantity) FROM inventory_reservations WHERE part_code = c.code), 0),
		       now()
		FROM unnest($1::text[]) AS c(code)
		ORDER BY c.code
		ON CONFLICT (part_code)
		DO UPDATE SET reserved_stock = EXCLUDED.reserved_stock, updated_at = now()`, partCodes)
	if err != nil {
		return fmt.Errorf("refresh reserved stock: %w", err)
	}
	return nil
}
