package production

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/application/dto"
	"github.com/jhoicas/produccion-api/internal/domain"
	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/planning"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

func newBatchID() string { return uuid.NewString() }

// StartProduction 計画 → 生産中. Bloquea el plan y las filas de inventario de sus piezas,
// verifica suficiencia con esas filas y, si ninguna pieza falta, consume el material,
// registra una transacción de salida por pieza y libera las reservas del plan.
// Con cualquier faltante no escribe nada y devuelve *domain.InsufficientInventoryError.
func (uc *PlanUseCase) StartProduction(ctx context.Context, id int64, actor string) (*dto.StartProductionResponse, error) {
	var out *dto.StartProductionResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		plan, err := loadPlanForUpdate(ctx, repos, id)
		if err != nil {
			return err
		}
		if err := planning.CheckStart(plan.Status); err != nil {
			return err
		}

		rows, err := ExpandBOM(ctx, repos.BOM, plan.ProductCode, plan.PlannedQuantity)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return domain.ErrNoBOMData
		}
		codes := planning.PartCodes(planning.AggregateRequirements(rows))
		sort.Strings(codes)

		// Orden fijo de bloqueo para que dos inicios concurrentes no se crucen.
		locked, err := repos.Inventory.LockByParts(ctx, codes)
		if err != nil {
			return err
		}

		req, err := uc.calculator.CalculateFor(ctx, repos, plan)
		if err != nil {
			return err
		}
		// Solo stock físico: una recepción programada todavía no se puede consumir.
		var shortages []domain.ShortageDetail
		for _, line := range req.Requirements {
			if line.StartShortage.IsPositive() {
				shortages = append(shortages, domain.ShortageDetail{
					PartCode:         line.PartCode,
					RequiredQuantity: line.RequiredQuantity,
					AvailableStock:   planning.StartFreeStock(line.CurrentStock, line.TotalReservedStock, line.PlanReservedQuantity),
					ShortageQuantity: line.StartShortage,
				})
			}
		}
		if len(shortages) > 0 {
			return &domain.InsufficientInventoryError{PlanID: plan.ID, Shortages: shortages}
		}

		batchID := uc.newBatchID()
		now := uc.now()
		remarks := fmt.Sprintf("生産計画ID:%d %s×%d 生産開始", plan.ID, plan.ProductCode, plan.PlannedQuantity)
		issued := make([]dto.IssueLineResponse, 0, len(req.Requirements))
		for _, line := range req.Requirements {
			before := decimal.Zero
			if inv, ok := locked[line.PartCode]; ok && inv != nil {
				before = inv.CurrentStock
			}
			after := before.Sub(line.RequiredQuantity)
			if err := repos.Inventory.SetCurrentStock(ctx, line.PartCode, after); err != nil {
				return err
			}
			tx := &entity.InventoryTransaction{
				BatchID:         batchID,
				PartCode:        line.PartCode,
				TransactionType: entity.TransactionTypeIssue,
				Quantity:        line.RequiredQuantity.Neg(),
				StockBefore:     before,
				StockAfter:      after,
				ReferenceType:   entity.ReferenceProductionPlan,
				ReferenceID:     plan.ID,
				Remarks:         remarks,
				CreatedBy:       actor,
				CreatedAt:       now,
			}
			if err := repos.Transactions.Create(ctx, tx); err != nil {
				return fmt.Errorf("registrar salida de %s: %w", line.PartCode, err)
			}
			issued = append(issued, dto.IssueLineResponse{
				PartCode:    line.PartCode,
				Quantity:    line.RequiredQuantity,
				StockBefore: before,
				StockAfter:  after,
			})
		}

		del, err := uc.reservations.DeleteReservations(ctx, repos, plan.ID)
		if err != nil {
			return err
		}

		plan.Status = entity.PlanStatusInProduction
		plan.StartedAt = &now
		plan.UpdatedBy = actor
		plan.UpdatedAt = now
		if err := repos.Plans.Update(ctx, plan); err != nil {
			return err
		}
		out = &dto.StartProductionResponse{
			Plan:                 toPlanResponse(plan, nil),
			BatchID:              batchID,
			Issued:               issued,
			ReleasedReservations: del.DeletedCount,
		}
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "start_production")
		return nil, err
	}
	uc.log.Info().
		Int64("plan_id", id).
		Str("batch_id", out.BatchID).
		Int("parts_issued", len(out.Issued)).
		Int("reservations_released", out.ReleasedReservations).
		Str("actor", actor).
		Msg("producción iniciada")
	return out, nil
}

// CompleteProduction 生産中 → 完了. actual_quantity por defecto es la cantidad planeada.
func (uc *PlanUseCase) CompleteProduction(ctx context.Context, id int64, actor string, in dto.CompleteProductionRequest) (*dto.PlanResponse, error) {
	if in.ActualQuantity != nil && *in.ActualQuantity < 0 {
		return nil, domain.Validationf("actual_quantity no puede ser negativa (recibido %d)", *in.ActualQuantity)
	}
	var out *dto.PlanResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		plan, err := loadPlanForUpdate(ctx, repos, id)
		if err != nil {
			return err
		}
		if err := planning.CheckComplete(plan.Status); err != nil {
			return err
		}
		actual := plan.PlannedQuantity
		if in.ActualQuantity != nil {
			actual = *in.ActualQuantity
		}
		now := uc.now()
		plan.Status = entity.PlanStatusCompleted
		plan.ActualQuantity = &actual
		plan.CompletedAt = &now
		plan.UpdatedBy = actor
		plan.UpdatedAt = now
		if err := repos.Plans.Update(ctx, plan); err != nil {
			return err
		}
		// Normalmente no queda nada: las reservas se liberaron al iniciar.
		if _, err := uc.reservations.DeleteReservations(ctx, repos, plan.ID); err != nil {
			return err
		}
		resp := toPlanResponse(plan, nil)
		out = &resp
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "complete_production")
		return nil, err
	}
	uc.log.Info().Int64("plan_id", id).Int("actual_quantity", *out.ActualQuantity).Str("actor", actor).Msg("producción completada")
	return out, nil
}
