package production

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/application/dto"
	"github.com/jhoicas/produccion-api/internal/domain/planning"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de piezas.
// Combina stock, reservas de todos los planes y recepciones pendientes contra el stock de seguridad.
type ReplenishmentUseCase struct {
	repos repository.Repositories
	now   func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(repos repository.Repositories) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repos: repos, now: time.Now}
}

// GenerateReplenishmentList devuelve las piezas activas cuyo stock libre
// (current − reserved + recepciones pendientes) quedó bajo su stock de seguridad,
// con la cantidad sugerida de pedido. Ordena por mayor déficit primero.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Maestro de piezas activas
	parts, err := uc.repos.Parts.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		codes = append(codes, p.PartCode)
	}

	// 2. Stock, reservas y recepciones sin límite de fecha
	stock, err := uc.repos.Inventory.GetByParts(ctx, codes)
	if err != nil {
		return nil, err
	}
	reserved, err := uc.repos.Reservations.SumByParts(ctx, codes)
	if err != nil {
		return nil, err
	}
	scheduled, err := uc.repos.Receipts.SumOutstanding(ctx, codes, nil)
	if err != nil {
		return nil, err
	}

	// 3. Construir sugerencias
	today := uc.now()
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range parts {
		current := decimal.Zero
		if inv, ok := stock[p.PartCode]; ok && inv != nil {
			current = inv.CurrentStock
		}
		res := planning.SumOrZero(reserved, p.PartCode)
		sch := planning.SumOrZero(scheduled, p.PartCode)
		free := planning.AvailableStock(current, res, sch)
		if !free.LessThan(p.SafetyStock) {
			continue
		}
		qty := p.SafetyStock.Sub(free)
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			PartCode:            p.PartCode,
			Specification:       p.Specification,
			Supplier:            p.Supplier,
			CurrentStock:        current,
			ReservedStock:       res,
			ScheduledReceipts:   sch,
			FreeStock:           free,
			SafetyStock:         p.SafetyStock,
			SuggestedOrderQty:   qty,
			UnitPrice:           p.UnitPrice,
			EstimatedOrderCost:  qty.Mul(p.UnitPrice),
			LeadTimeDays:        p.LeadTimeDays,
			ExpectedArrivalDate: today.AddDate(0, 0, p.LeadTimeDays).Format(planning.DateLayout),
		})
	}

	// 4. Mayor déficit primero; a igual déficit, mayor lead time (hay que pedir antes)
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.SuggestedOrderQty.Equal(b.SuggestedOrderQty) {
			return a.SuggestedOrderQty.GreaterThan(b.SuggestedOrderQty)
		}
		if a.LeadTimeDays != b.LeadTimeDays {
			return a.LeadTimeDays > b.LeadTimeDays
		}
		return a.PartCode < b.PartCode
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
