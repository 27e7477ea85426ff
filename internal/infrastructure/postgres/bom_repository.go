package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

var (
	_ repository.BOMRepository     = (*BOMRepo)(nil)
	_ repository.StationRepository = (*StationRepo)(nil)
)

// BOMRepo lectura de bom_lines.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador del BOM. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// ListActiveLines líneas activas del producto cuya pieza también está activa, en orden de alta.
func (r *BOMRepo) ListActiveLines(ctx context.Context, productCode string) ([]*entity.BOMLine, error) {
	query := `
		SELECT b.id, b.product_code, b.part_code, b.quantity, b.is_active, b.created_at, b.updated_at
		FROM bom_lines b
		JOIN parts p ON p.part_code = b.part_code
		WHERE b.product_code = $1 AND b.is_active AND p.is_active
		ORDER BY b.id`
	rows, err := r.q.Query(ctx, query, productCode)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(&l.ID, &l.ProductCode, &l.PartCode, &l.Quantity, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// StationRepo lectura de bom_station_usages.
type StationRepo struct {
	q Querier
}

// NewStationRepository construye el adaptador de estaciones. Pasar pool o tx (Querier).
func NewStationRepository(q Querier) *StationRepo {
	return &StationRepo{q: q}
}

// ListUsages uso por estación de las piezas del producto.
func (r *StationRepo) ListUsages(ctx context.Context, productCode string) ([]*entity.StationUsage, error) {
	query := `
		SELECT u.product_code, u.station_code, COALESCE(s.station_name, ''), u.part_code, u.quantity
		FROM bom_station_usages u
		LEFT JOIN stations s ON s.station_code = u.station_code
		WHERE u.product_code = $1
		ORDER BY u.station_code, u.part_code`
	rows, err := r.q.Query(ctx, query, productCode)
	if err != nil {
		return nil, fmt.Errorf("list station usages: %w", err)
	}
	defer rows.Close()
	var list []*entity.StationUsage
	for rows.Next() {
		var u entity.StationUsage
		if err := rows.Scan(&u.ProductCode, &u.StationCode, &u.StationName, &u.PartCode, &u.Quantity); err != nil {
			return nil, fmt.Errorf("scan station usage: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
