package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create persiste un movimiento de inventario y asigna su ID.
func (r *InventoryTransactionRepo) Create(ctx context.Context, txn *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (batch_id, part_code, transaction_type, quantity, stock_before, stock_after,
			reference_type, reference_id, remarks, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		txn.BatchID, txn.PartCode, txn.TransactionType, txn.Quantity, txn.StockBefore, txn.StockAfter,
		txn.ReferenceType, txn.ReferenceID, txn.Remarks, txn.CreatedBy, txn.CreatedAt,
	).Scan(&txn.ID)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// ListByReference movimientos que referencian a la entidad indicada, en orden de registro.
func (r *InventoryTransactionRepo) ListByReference(ctx context.Context, referenceType string, referenceID int64) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, batch_id, part_code, transaction_type, quantity, stock_before, stock_after,
			reference_type, reference_id, remarks, created_by, created_at
		FROM inventory_transactions
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, referenceType, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryTransaction, 0)
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.BatchID, &t.PartCode, &t.TransactionType, &t.Quantity, &t.StockBefore, &t.StockAfter,
			&t.ReferenceType, &t.ReferenceID, &t.Remarks, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
