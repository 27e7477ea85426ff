package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation               = errors.New("entrada inválida")
	ErrPlanNotFound             = errors.New("plan de producción no encontrado")
	ErrProductNotFound          = errors.New("producto no encontrado o inactivo")
	ErrInvalidStatusForStart    = errors.New("el plan no está en estado 計画")
	ErrInvalidStatusForComplete = errors.New("el plan no está en estado 生産中")
	ErrInvalidStatusTransition  = errors.New("transición de estado no permitida")
	ErrNoBOMData                = errors.New("BOM no configurado para el producto")
	ErrInsufficientInventory    = errors.New("inventario insuficiente")
)

// Validationf envuelve ErrValidation con el detalle del campo rechazado.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ShortageDetail faltante de una pieza al intentar iniciar producción.
type ShortageDetail struct {
	PartCode         string          `json:"part_code"`
	RequiredQuantity decimal.Decimal `json:"required_quantity"`
	AvailableStock   decimal.Decimal `json:"available_stock"`
	ShortageQuantity decimal.Decimal `json:"shortage_quantity"`
}

// InsufficientInventoryError detalle por pieza del gate de inicio de producción.
type InsufficientInventoryError struct {
	PlanID    int64
	Shortages []ShortageDetail
}

func (e *InsufficientInventoryError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s falta %s", s.PartCode, s.ShortageQuantity.String()))
	}
	return fmt.Sprintf("%s para el plan %d: %s", ErrInsufficientInventory.Error(), e.PlanID, strings.Join(parts, ", "))
}

func (e *InsufficientInventoryError) Unwrap() error { return ErrInsufficientInventory }
