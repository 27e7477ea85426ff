package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

// Querier lo que comparten *pgxpool.Pool y pgx.Tx; los repos lo reciben para funcionar con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// NewRepositories construye todos los repos sobre el mismo Querier (pool o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Products:     NewProductRepository(q),
		Parts:        NewPartRepository(q),
		BOM:          NewBOMRepository(q),
		Stations:     NewStationRepository(q),
		Plans:        NewPlanRepository(q),
		Reservations: NewReservationRepository(q),
		Receipts:     NewScheduledReceiptRepository(q),
		Inventory:    NewInventoryRepository(q),
		Transactions: NewInventoryTransactionRepository(q),
	}
}
