package planning

import (
	"github.com/jhoicas/produccion-api/internal/domain"
	"github.com/jhoicas/produccion-api/internal/domain/entity"
)

// IsValidStatus indica si s es uno de los cuatro estados del plan.
func IsValidStatus(s string) bool {
	switch s {
	case entity.PlanStatusPlanned, entity.PlanStatusInProduction, entity.PlanStatusCompleted, entity.PlanStatusCancelled:
		return true
	}
	return false
}

// CarriesReservations estados en los que el plan mantiene reservas vivas.
func CarriesReservations(s string) bool {
	return s == entity.PlanStatusPlanned || s == entity.PlanStatusInProduction
}

// IsTerminal 完了 y キャンセル no admiten más transiciones.
func IsTerminal(s string) bool {
	return s == entity.PlanStatusCompleted || s == entity.PlanStatusCancelled
}

// CheckStart 計画 → 生産中.
func CheckStart(current string) error {
	if current != entity.PlanStatusPlanned {
		return domain.ErrInvalidStatusForStart
	}
	return nil
}

// CheckComplete 生産中 → 完了.
func CheckComplete(current string) error {
	if current != entity.PlanStatusInProduction {
		return domain.ErrInvalidStatusForComplete
	}
	return nil
}

// CheckCancel 計画 → キャンセル.
func CheckCancel(current string) error {
	if current != entity.PlanStatusPlanned {
		return domain.ErrInvalidStatusTransition
	}
	return nil
}

// CheckEdit valida una edición que lleva el plan de current a next.
// La edición no puede iniciar ni completar producción: eso lo hacen StartProduction y CompleteProduction.
func CheckEdit(current, next string) error {
	if IsTerminal(current) {
		return domain.ErrInvalidStatusTransition
	}
	if next == current {
		return nil
	}
	if next == entity.PlanStatusCancelled {
		return CheckCancel(current)
	}
	return domain.ErrInvalidStatusTransition
}
