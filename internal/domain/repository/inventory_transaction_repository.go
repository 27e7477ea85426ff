package repository

import (
	"context"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
)

// InventoryTransactionRepository define el puerto del historial de movimientos de stock.
type InventoryTransactionRepository interface {
	// Create inserta la transacción y asigna su ID.
	Create(ctx context.Context, txn *entity.InventoryTransaction) error
	ListByReference(ctx context.Context, referenceType string, referenceID int64) ([]*entity.InventoryTransaction, error)
}
