package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
)

// ReservationRepository define el puerto de persistencia de inventory_reservations.
type ReservationRepository interface {
	// CreateBatch inserta las reservas y asigna sus IDs.
	CreateBatch(ctx context.Context, reservations []*entity.InventoryReservation) error
	ListByPlan(ctx context.Context, planID int64) ([]*entity.InventoryReservation, error)
	// DeleteByPlan borra y devuelve las filas eliminadas (vacío si no había ninguna).
	DeleteByPlan(ctx context.Context, planID int64) ([]*entity.InventoryReservation, error)
	// SumByParts suma reserved_quantity de todos los planes por pieza. partCodes vacío = todas.
	SumByParts(ctx context.Context, partCodes []string) (map[string]decimal.Decimal, error)
}
