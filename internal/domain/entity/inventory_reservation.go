package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryReservation retención de stock atribuida a un plan de producción.
// Pertenece al plan: se borra en cascada con él.
type InventoryReservation struct {
	ID               int64
	ProductionPlanID int64
	PartCode         string
	ReservedQuantity decimal.Decimal
	ReservationDate  time.Time
	Remarks          string
	CreatedBy        string
	CreatedAt        time.Time
}
