package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

var _ repository.ScheduledReceiptRepository = (*ScheduledReceiptRepo)(nil)

// ScheduledReceiptRepo lectura de scheduled_receipts sobre PostgreSQL.
type ScheduledReceiptRepo struct {
	q Querier
}

// NewScheduledReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewScheduledReceiptRepository(q Querier) *ScheduledReceiptRepo {
	return &ScheduledReceiptRepo{q: q}
}

// SumOutstanding cantidad esperada (scheduled_quantity o, sin respuesta, order_quantity)
// de las recepciones pendientes por pieza. La fecha esperada es scheduled_date o requested_date.
func (r *ScheduledReceiptRepo) SumOutstanding(ctx context.Context, partCodes []string, until *time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT part_code, SUM(COALESCE(scheduled_quantity, order_quantity))
		FROM scheduled_receipts
		WHERE status = ANY($1)`
	args := []any{[]string{entity.ReceiptStatusAwaitingReply, entity.ReceiptStatusScheduled}}
	if len(partCodes) > 0 {
		args = append(args, partCodes)
		query += fmt.Sprintf(` AND part_code = ANY($%d)`, len(args))
	}
	if until != nil {
		args = append(args, *until)
		query += fmt.Sprintf(` AND COALESCE(scheduled_date, requested_date) <= $%d`, len(args))
	}
	query += ` GROUP BY part_code`
	return sumByPart(ctx, r.q, query, args...)
}
