package planning

import (
	"time"

	"github.com/shopspring/decimal"
)

// AvailableStock = current_stock − total_reserved_stock + scheduled_receipts_until_start.
// total_reserved_stock incluye la reserva del propio plan.
func AvailableStock(currentStock, totalReserved, scheduledUntilStart decimal.Decimal) decimal.Decimal {
	return currentStock.Sub(totalReserved).Add(scheduledUntilStart)
}

// Shortage = max(0, required − available).
func Shortage(required, available decimal.Decimal) decimal.Decimal {
	s := required.Sub(available)
	if s.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return s
}

// StartFreeStock stock físico que el plan puede consumir al iniciar: current_stock menos
// lo reservado por otros planes. Las recepciones programadas no cuentan.
func StartFreeStock(currentStock, totalReserved, planReserved decimal.Decimal) decimal.Decimal {
	return currentStock.Sub(totalReserved.Sub(planReserved))
}

// StartShortage faltante al iniciar producción, solo contra stock físico.
// La reserva del propio plan se libera al consumir, así que vuelve a contar para ese plan.
func StartShortage(required, currentStock, totalReserved, planReserved decimal.Decimal) decimal.Decimal {
	return Shortage(required, StartFreeStock(currentStock, totalReserved, planReserved))
}

// IsAwaitingReceipt el stock físico no alcanza pero las recepciones programadas cubren el faltante.
// Informativo: no participa en el gate de inicio de producción.
func IsAwaitingReceipt(currentStock, required, shortage decimal.Decimal) bool {
	return currentStock.LessThan(required) && shortage.LessThanOrEqual(decimal.Zero)
}

// ProcurementDueDate último día para emitir la orden y recibirla antes del inicio del plan.
func ProcurementDueDate(startDate time.Time, leadTimeDays int) time.Time {
	return startDate.AddDate(0, 0, -leadTimeDays)
}
