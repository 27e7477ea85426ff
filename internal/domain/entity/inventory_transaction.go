package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TransactionTypeReceipt = "receipt" // entrada
	TransactionTypeIssue   = "issue"   // salida a producción
)

// Tipos de referencia de una transacción.
const (
	ReferenceProductionPlan   = "production_plan"
	ReferenceScheduledReceipt = "scheduled_receipt"
)

// InventoryTransaction registro de auditoría de un cambio de stock.
// Quantity es negativa en salidas; StockBefore/StockAfter fotografían la fila de inventory.
type InventoryTransaction struct {
	ID              int64
	BatchID         string // agrupa las transacciones de una misma operación
	PartCode        string
	TransactionType string
	Quantity        decimal.Decimal
	StockBefore     decimal.Decimal
	StockAfter      decimal.Decimal
	ReferenceType   string
	ReferenceID     int64
	Remarks         string
	CreatedBy       string
	CreatedAt       time.Time
}
