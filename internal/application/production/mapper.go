package production

import (
	"github.com/jhoicas/produccion-api/internal/application/dto"
	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/planning"
)

func toPlanResponse(p *entity.ProductionPlan, reservations []*entity.InventoryReservation) dto.PlanResponse {
	out := dto.PlanResponse{
		ID:              p.ID,
		BuildingNo:      p.BuildingNo,
		ProductCode:     p.ProductCode,
		PlannedQuantity: p.PlannedQuantity,
		ActualQuantity:  p.ActualQuantity,
		StartDate:       p.StartDate.Format(planning.DateLayout),
		Status:          p.Status,
		Remarks:         p.Remarks,
		CreatedBy:       p.CreatedBy,
		UpdatedBy:       p.UpdatedBy,
		StartedAt:       p.StartedAt,
		CompletedAt:     p.CompletedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if len(reservations) > 0 {
		out.Reservations = toReservationResponses(reservations)
	}
	return out
}

func toReservationResponses(list []*entity.InventoryReservation) []dto.ReservationResponse {
	out := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ReservationResponse{
			ID:               r.ID,
			ProductionPlanID: r.ProductionPlanID,
			PartCode:         r.PartCode,
			ReservedQuantity: r.ReservedQuantity,
			ReservationDate:  r.ReservationDate.Format(planning.DateLayout),
			Remarks:          r.Remarks,
			CreatedBy:        r.CreatedBy,
		})
	}
	return out
}

func toSyncResponse(s SyncResult) dto.ReservationSyncResponse {
	return dto.ReservationSyncResponse{Action: s.Action, Deleted: s.Deleted, Created: len(s.Created)}
}

func toTransactionResponses(list []*entity.InventoryTransaction) []dto.InventoryTransactionResponse {
	out := make([]dto.InventoryTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.InventoryTransactionResponse{
			ID:              t.ID,
			BatchID:         t.BatchID,
			PartCode:        t.PartCode,
			TransactionType: t.TransactionType,
			Quantity:        t.Quantity,
			StockBefore:     t.StockBefore,
			StockAfter:      t.StockAfter,
			ReferenceType:   t.ReferenceType,
			ReferenceID:     t.ReferenceID,
			Remarks:         t.Remarks,
			CreatedBy:       t.CreatedBy,
			CreatedAt:       t.CreatedAt,
		})
	}
	return out
}
