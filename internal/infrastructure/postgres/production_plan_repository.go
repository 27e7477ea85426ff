package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/produccion-api/internal/domain"
	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

var _ repository.ProductionPlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación de ProductionPlanRepository sobre PostgreSQL (usable con pool o tx).
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador de planes. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `id, building_no, product_code, planned_quantity, actual_quantity, start_date, status, remarks,
	created_by, updated_by, started_at, completed_at, created_at, updated_at`

func scanPlan(row pgx.Row) (*entity.ProductionPlan, error) {
	var p entity.ProductionPlan
	err := row.Scan(&p.ID, &p.BuildingNo, &p.ProductCode, &p.PlannedQuantity, &p.ActualQuantity, &p.StartDate,
		&p.Status, &p.Remarks, &p.CreatedBy, &p.UpdatedBy, &p.StartedAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste el plan y asigna plan.ID.
func (r *PlanRepo) Create(ctx context.Context, plan *entity.ProductionPlan) error {
	query := `
		INSERT INTO production_plans (building_no, product_code, planned_quantity, actual_quantity, start_date, status, remarks,
			created_by, updated_by, started_at, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		plan.BuildingNo, plan.ProductCode, plan.PlannedQuantity, plan.ActualQuantity, plan.StartDate, plan.Status, plan.Remarks,
		plan.CreatedBy, plan.UpdatedBy, plan.StartedAt, plan.CompletedAt, plan.CreatedAt, plan.UpdatedAt,
	).Scan(&plan.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		if isCheckViolation(err) {
			return domain.Validationf("plan rechazado por la base de datos: %v", err)
		}
		return fmt.Errorf("insert production plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID; nil, nil si no existe.
func (r *PlanRepo) GetByID(ctx context.Context, id int64) (*entity.ProductionPlan, error) {
	return r.get(ctx, `SELECT `+planColumns+` FROM production_plans WHERE id = $1`, id)
}

// GetForUpdate obtiene el plan y bloquea la fila (SELECT FOR UPDATE).
func (r *PlanRepo) GetForUpdate(ctx context.Context, id int64) (*entity.ProductionPlan, error) {
	return r.get(ctx, `SELECT `+planColumns+` FROM production_plans WHERE id = $1 FOR UPDATE`, id)
}

func (r *PlanRepo) get(ctx context.Context, query string, id int64) (*entity.ProductionPlan, error) {
	p, err := scanPlan(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production plan: %w", err)
	}
	return p, nil
}

// Update reescribe los campos mutables del plan.
func (r *PlanRepo) Update(ctx context.Context, plan *entity.ProductionPlan) error {
	query := `
		UPDATE production_plans SET
			building_no = $2, product_code = $3, planned_quantity = $4, actual_quantity = $5, start_date = $6,
			status = $7, remarks = $8, updated_by = $9, started_at = $10, completed_at = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		plan.ID, plan.BuildingNo, plan.ProductCode, plan.PlannedQuantity, plan.ActualQuantity, plan.StartDate,
		plan.Status, plan.Remarks, plan.UpdatedBy, plan.StartedAt, plan.CompletedAt, plan.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		if isCheckViolation(err) {
			return domain.Validationf("plan rechazado por la base de datos: %v", err)
		}
		return fmt.Errorf("update production plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

// Delete borra el plan; las reservas caen por ON DELETE CASCADE si quedara alguna.
func (r *PlanRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM production_plans WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete production plan: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List lista planes por start_date e id con filtros opcionales.
func (r *PlanRepo) List(ctx context.Context, f repository.PlanFilter) ([]*entity.ProductionPlan, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.BuildingNo != "" {
		add("building_no = $%d", f.BuildingNo)
	}
	if f.ProductCode != "" {
		add("product_code = $%d", f.ProductCode)
	}

	query := `SELECT ` + planColumns + ` FROM production_plans`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY start_date, id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production plans: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ProductionPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production plan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
