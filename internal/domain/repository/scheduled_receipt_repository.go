package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledReceiptRepository define el puerto de lectura de recepciones programadas.
type ScheduledReceiptRepository interface {
	// SumOutstanding suma la cantidad esperada de las recepciones 納期回答待ち/入荷予定 por pieza.
	// Con until != nil solo cuenta las que tienen fecha esperada en o antes de until.
	// partCodes vacío = todas las piezas.
	SumOutstanding(ctx context.Context, partCodes []string, until *time.Time) (map[string]decimal.Decimal, error)
}
