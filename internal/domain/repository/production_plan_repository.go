package repository

import (
	"context"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
)

// PlanFilter filtros de listado de planes. Campos vacíos no filtran.
type PlanFilter struct {
	Status      string
	BuildingNo  string
	ProductCode string
	Limit       int
	Offset      int
}

// ProductionPlanRepository define el puerto de persistencia de planes de producción.
type ProductionPlanRepository interface {
	// Create inserta el plan y asigna plan.ID.
	Create(ctx context.Context, plan *entity.ProductionPlan) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.ProductionPlan, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.ProductionPlan, error)
	Update(ctx context.Context, plan *entity.ProductionPlan) error
	// Delete devuelve false si la fila no existía.
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter PlanFilter) ([]*entity.ProductionPlan, error)
}
