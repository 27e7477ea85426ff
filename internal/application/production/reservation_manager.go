package production

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/planning"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

// Acciones reportadas al reescribir reservas.
const (
	ReservationActionCreated   = "created"
	ReservationActionRecreated = "recreated"
	ReservationActionDeleted   = "deleted"
	ReservationActionUnchanged = "unchanged"
)

// DeleteResult filas liberadas por DeleteReservations.
type DeleteResult struct {
	DeletedCount int
	DeletedRows  []*entity.InventoryReservation
}

// SyncResult efecto de UpdateReservations sobre las reservas del plan.
type SyncResult struct {
	Action  string
	Deleted int
	Created []*entity.InventoryReservation
}

// ReservationManager mantiene inventory_reservations alineadas con el producto y la cantidad del plan.
// No abre transacciones: siempre trabaja con los repos de la transacción que escribe el plan.
type ReservationManager struct {
	log zerolog.Logger
	now func() time.Time
}

// NewReservationManager construye el gestor de reservas.
func NewReservationManager(log zerolog.Logger) *ReservationManager {
	return &ReservationManager{log: log, now: time.Now}
}

// CreateReservations inserta una reserva por pieza con reserved_quantity = required_quantity.
// Sin BOM activo no inserta nada y devuelve lista vacía.
func (m *ReservationManager) CreateReservations(
	ctx context.Context,
	repos repository.Repositories,
	planID int64, productCode string, plannedQuantity int, actor string,
) ([]*entity.InventoryReservation, error) {
	rows, err := ExpandBOM(ctx, repos.BOM, productCode, plannedQuantity)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		m.log.Warn().Int64("plan_id", planID).Str("product_code", productCode).Msg("sin BOM activo, no se crean reservas")
		return []*entity.InventoryReservation{}, nil
	}
	rows = planning.AggregateRequirements(rows)

	now := m.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	remarks := fmt.Sprintf("生産計画ID:%d %s×%d 自動引当", planID, productCode, plannedQuantity)

	reservations := make([]*entity.InventoryReservation, 0, len(rows))
	for _, r := range rows {
		reservations = append(reservations, &entity.InventoryReservation{
			ProductionPlanID: planID,
			PartCode:         r.PartCode,
			ReservedQuantity: r.RequiredQuantity,
			ReservationDate:  day,
			Remarks:          remarks,
			CreatedBy:        actor,
			CreatedAt:        now,
		})
	}
	if err := repos.Reservations.CreateBatch(ctx, reservations); err != nil {
		return nil, fmt.Errorf("crear reservas del plan %d: %w", planID, err)
	}
	if err := repos.Inventory.RefreshReservedStock(ctx, planning.PartCodes(rows)); err != nil {
		return nil, err
	}
	return reservations, nil
}

// DeleteReservations borra todas las reservas del plan. Idempotente: sin reservas devuelve DeletedCount=0.
func (m *ReservationManager) DeleteReservations(ctx context.Context, repos repository.Repositories, planID int64) (DeleteResult, error) {
	deleted, err := repos.Reservations.DeleteByPlan(ctx, planID)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("borrar reservas del plan %d: %w", planID, err)
	}
	if len(deleted) > 0 {
		codes := make([]string, 0, len(deleted))
		for _, r := range deleted {
			codes = append(codes, r.PartCode)
		}
		if err := repos.Inventory.RefreshReservedStock(ctx, codes); err != nil {
			return DeleteResult{}, err
		}
	}
	return DeleteResult{DeletedCount: len(deleted), DeletedRows: deleted}, nil
}

// UpdateReservations borra siempre las reservas existentes y, si newStatus mantiene reservas vivas,
// las recrea a partir del producto y la cantidad actuales. Ejecutarla dos veces deja el mismo resultado.
func (m *ReservationManager) UpdateReservations(
	ctx context.Context,
	repos repository.Repositories,
	planID int64, productCode string, plannedQuantity int, newStatus, actor string,
) (SyncResult, error) {
	del, err := m.DeleteReservations(ctx, repos, planID)
	if err != nil {
		return SyncResult{}, err
	}
	if !planning.CarriesReservations(newStatus) {
		return SyncResult{Action: ReservationActionDeleted, Deleted: del.DeletedCount, Created: []*entity.InventoryReservation{}}, nil
	}
	created, err := m.CreateReservations(ctx, repos, planID, productCode, plannedQuantity, actor)
	if err != nil {
		return SyncResult{}, err
	}
	return SyncResult{Action: ReservationActionRecreated, Deleted: del.DeletedCount, Created: created}, nil
}
