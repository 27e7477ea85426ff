package production

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/application/dto"
	"github.com/jhoicas/produccion-api/internal/domain"
	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/planning"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

// SufficiencyCalculator cruza la necesidad del plan con stock, reservas de todos los planes
// y recepciones programadas hasta la fecha de inicio. Solo lectura.
type SufficiencyCalculator struct {
	repos repository.Repositories
}

// NewSufficiencyCalculator construye el calculador sobre repos de lectura (pool).
func NewSufficiencyCalculator(repos repository.Repositories) *SufficiencyCalculator {
	return &SufficiencyCalculator{repos: repos}
}

// Calculate evalúa la suficiencia del plan planID.
func (c *SufficiencyCalculator) Calculate(ctx context.Context, planID int64) (*dto.RequirementsResponse, error) {
	plan, err := c.repos.Plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}
	return c.CalculateFor(ctx, c.repos, plan)
}

// CalculateFor evalúa el plan con los repos indicados; StartProduction lo llama con los repos
// de su transacción para leer el stock que ya tiene bloqueado.
func (c *SufficiencyCalculator) CalculateFor(ctx context.Context, repos repository.Repositories, plan *entity.ProductionPlan) (*dto.RequirementsResponse, error) {
	out := &dto.RequirementsResponse{
		PlanID:          plan.ID,
		ProductCode:     plan.ProductCode,
		PlannedQuantity: plan.PlannedQuantity,
		StartDate:       plan.StartDate.Format(planning.DateLayout),
		Status:          plan.Status,
		BOMConfigured:   true,
		Requirements:    []dto.PartRequirementResponse{},
		ShortageSummary: dto.ShortageSummary{TotalShortageQuantity: decimal.Zero},
	}

	rows, err := ExpandBOM(ctx, repos.BOM, plan.ProductCode, plan.PlannedQuantity)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		out.BOMConfigured = false
		out.Warning = dto.WarningNoBOMData
		return out, nil
	}
	rows = planning.AggregateRequirements(rows)
	codes := planning.PartCodes(rows)

	parts, err := repos.Parts.GetByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	stock, err := repos.Inventory.GetByParts(ctx, codes)
	if err != nil {
		return nil, err
	}
	totalReserved, err := repos.Reservations.SumByParts(ctx, codes)
	if err != nil {
		return nil, err
	}
	own, err := repos.Reservations.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	ownByPart := make(map[string]decimal.Decimal, len(own))
	for _, r := range own {
		ownByPart[r.PartCode] = planning.SumOrZero(ownByPart, r.PartCode).Add(r.ReservedQuantity)
	}
	startDate := plan.StartDate
	scheduled, err := repos.Receipts.SumOutstanding(ctx, codes, &startDate)
	if err != nil {
		return nil, err
	}
	usages, err := repos.Stations.ListUsages(ctx, plan.ProductCode)
	if err != nil {
		return nil, fmt.Errorf("estaciones de %s: %w", plan.ProductCode, err)
	}
	stationsByPart := make(map[string][]dto.StationUsageResponse)
	for _, u := range usages {
		stationsByPart[u.PartCode] = append(stationsByPart[u.PartCode], dto.StationUsageResponse{
			StationCode:     u.StationCode,
			StationName:     u.StationName,
			QuantityPerUnit: u.Quantity,
		})
	}

	canStart := plan.Status == entity.PlanStatusPlanned
	for _, r := range rows {
		line := dto.PartRequirementResponse{
			PartCode:                    r.PartCode,
			UnitQuantity:                r.UnitQuantity,
			RequiredQuantity:            r.RequiredQuantity,
			CurrentStock:                decimal.Zero,
			TotalReservedStock:          planning.SumOrZero(totalReserved, r.PartCode),
			PlanReservedQuantity:        planning.SumOrZero(ownByPart, r.PartCode),
			ScheduledReceiptsUntilStart: planning.SumOrZero(scheduled, r.PartCode),
			UnitPrice:                   decimal.Zero,
			SafetyStock:                 decimal.Zero,
			Stations:                    stationsByPart[r.PartCode],
		}
		if line.Stations == nil {
			line.Stations = []dto.StationUsageResponse{}
		}
		if inv, ok := stock[r.PartCode]; ok && inv != nil {
			line.CurrentStock = inv.CurrentStock
		}
		if p, ok := parts[r.PartCode]; ok && p != nil {
			line.Specification = p.Specification
			line.Category = p.Category
			line.Supplier = p.Supplier
			line.UnitPrice = p.UnitPrice
			line.LeadTimeDays = p.LeadTimeDays
			line.SafetyStock = p.SafetyStock
		}

		line.AvailableStock = planning.AvailableStock(line.CurrentStock, line.TotalReservedStock, line.ScheduledReceiptsUntilStart)
		line.ShortageQuantity = planning.Shortage(line.RequiredQuantity, line.AvailableStock)
		line.StartShortage = planning.StartShortage(line.RequiredQuantity, line.CurrentStock, line.TotalReservedStock, line.PlanReservedQuantity)
		line.ProcurementDueDate = planning.ProcurementDueDate(plan.StartDate, line.LeadTimeDays).Format(planning.DateLayout)
		line.IsAwaitingReceipt = planning.IsAwaitingReceipt(line.CurrentStock, line.RequiredQuantity, line.ShortageQuantity)
		line.BelowSafetyStock = line.AvailableStock.Sub(line.RequiredQuantity).LessThan(line.SafetyStock)

		if line.ShortageQuantity.IsPositive() {
			out.ShortageSummary.HasShortage = true
			out.ShortageSummary.ShortagePartCount++
			out.ShortageSummary.TotalShortageQuantity = out.ShortageSummary.TotalShortageQuantity.Add(line.ShortageQuantity)
		}
		if line.StartShortage.IsPositive() {
			canStart = false
		}
		out.Requirements = append(out.Requirements, line)
	}
	out.ShortageSummary.TotalParts = len(out.Requirements)
	out.ShortageSummary.CanStart = canStart
	return out, nil
}
