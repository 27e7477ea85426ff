package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.PartRepository    = (*PartRepo)(nil)
)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByCode obtiene un producto por código; nil, nil si no existe.
func (r *ProductRepo) GetByCode(ctx context.Context, productCode string) (*entity.Product, error) {
	query := `
		SELECT product_code, name, is_active, created_at, updated_at
		FROM products WHERE product_code = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, productCode).Scan(&p.ProductCode, &p.Name, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// PartRepo maestro de piezas sobre PostgreSQL.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de piezas. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = `part_code, specification, category, supplier, unit_price, lead_time_days, safety_stock, is_active, created_at, updated_at`

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(&p.PartCode, &p.Specification, &p.Category, &p.Supplier, &p.UnitPrice,
		&p.LeadTimeDays, &p.SafetyStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByCodes devuelve las piezas encontradas indexadas por part_code.
func (r *PartRepo) GetByCodes(ctx context.Context, partCodes []string) (map[string]*entity.Part, error) {
	out := make(map[string]*entity.Part, len(partCodes))
	if len(partCodes) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+partColumns+` FROM parts WHERE part_code = ANY($1)`, partCodes)
	if err != nil {
		return nil, fmt.Errorf("get parts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		out[p.PartCode] = p
	}
	return out, rows.Err()
}

// ListActive lista las piezas activas ordenadas por código.
func (r *PartRepo) ListActive(ctx context.Context) ([]*entity.Part, error) {
	rows, err := r.q.Query(ctx, `SELECT `+partColumns+` FROM parts WHERE is_active ORDER BY part_code`)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
