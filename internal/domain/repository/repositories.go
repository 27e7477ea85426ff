package repository

// Repositories agrupa los puertos atados a una misma conexión o transacción.
// TxRunner entrega un Repositories cuyo contenido comparte la transacción en curso.
type Repositories struct {
	Products     ProductRepository
	Parts        PartRepository
	BOM          BOMRepository
	Stations     StationRepository
	Plans        ProductionPlanRepository
	Reservations ReservationRepository
	Receipts     ScheduledReceiptRepository
	Inventory    InventoryRepository
	Transactions InventoryTransactionRepository
}
