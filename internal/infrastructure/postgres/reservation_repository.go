package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación de ReservationRepository sobre PostgreSQL (usable con pool o tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador de reservas. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationColumns = `id, production_plan_id, part_code, reserved_quantity, reservation_date, remarks, created_by, created_at`

func collectReservations(rows pgx.Rows) ([]*entity.InventoryReservation, error) {
	defer rows.Close()
	list := make([]*entity.InventoryReservation, 0)
	for rows.Next() {
		var res entity.InventoryReservation
		if err := rows.Scan(&res.ID, &res.ProductionPlanID, &res.PartCode, &res.ReservedQuantity,
			&res.ReservationDate, &res.Remarks, &res.CreatedBy, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

// CreateBatch inserta las reservas en un solo round-trip y asigna sus IDs.
func (r *ReservationRepo) CreateBatch(ctx context.Context, reservations []*entity.InventoryReservation) error {
	if len(reservations) == 0 {
		return nil
	}
	query := `
		INSERT INTO inventory_reservations (production_plan_id, part_code, reserved_quantity, reservation_date, remarks, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, res := range reservations {
		batch.Queue(query, res.ProductionPlanID, res.PartCode, res.ReservedQuantity, res.ReservationDate,
			res.Remarks, res.CreatedBy, res.CreatedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, res := range reservations {
		if err := br.QueryRow().Scan(&res.ID); err != nil {
			return fmt.Errorf("insert reservation %s: %w", res.PartCode, err)
		}
	}
	return br.Close()
}

// ListByPlan reservas del plan ordenadas por id.
func (r *ReservationRepo) ListByPlan(ctx context.Context, planID int64) ([]*entity.InventoryReservation, error) {
	rows, err := r.q.Query(ctx, `SELECT `+reservationColumns+` FROM inventory_reservations WHERE production_plan_id = $1 ORDER BY id`, planID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return collectReservations(rows)
}

// DeleteByPlan borra las reservas del plan y devuelve las filas eliminadas.
func (r *ReservationRepo) DeleteByPlan(ctx context.Context, planID int64) ([]*entity.InventoryReservation, error) {
	rows, err := r.q.Query(ctx, `DELETE FROM inventory_reservations WHERE production_plan_id = $1 RETURNING `+reservationColumns, planID)
	if err != nil {
		return nil, fmt.Errorf("delete reservations: %w", err)
	}
	return collectReservations(rows)
}

// SumByParts suma reserved_quantity de todos los planes por pieza. partCodes vacío = todas.
func (r *ReservationRepo) SumByParts(ctx context.Context, partCodes []string) (map[string]decimal.Decimal, error) {
	query := `SELECT part_code, SUM(reserved_quantity) FROM inventory_reservations`
	var args []any
	if len(partCodes) > 0 {
		query += ` WHERE part_code = ANY($1)`
		args = append(args, partCodes)
	}
	query += ` GROUP BY part_code`
	return sumByPart(ctx, r.q, query, args...)
}

// sumByPart lee filas (part_code, suma) en un mapa.
func sumByPart(ctx context.Context, q Querier, query string, args ...any) (map[string]decimal.Decimal, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sum by part: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var code string
		var sum decimal.Decimal
		if err := rows.Scan(&code, &sum); err != nil {
			return nil, fmt.Errorf("scan sum: %w", err)
		}
		out[code] = sum
	}
	return out, rows.Err()
}
