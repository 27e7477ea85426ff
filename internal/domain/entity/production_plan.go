package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del plan de producción (valores persistidos tal cual).
const (
	PlanStatusPlanned      = "計画"
	PlanStatusInProduction = "生産中"
	PlanStatusCompleted    = "完了"
	PlanStatusCancelled    = "キャンセル"
)

// ProductionPlan plan de fabricación de un producto en un edificio a partir de StartDate.
type ProductionPlan struct {
	ID              int64
	BuildingNo      string
	ProductCode     string
	PlannedQuantity int
	ActualQuantity  *int
	StartDate       time.Time
	Status          string
	Remarks         string
	CreatedBy       string
	UpdatedBy       string
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PlannedQuantityDecimal cantidad planificada como decimal para multiplicar por el BOM.
func (p *ProductionPlan) PlannedQuantityDecimal() decimal.Decimal {
	return decimal.NewFromInt(int64(p.PlannedQuantity))
}
