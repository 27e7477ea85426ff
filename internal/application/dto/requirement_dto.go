package dto

import "github.com/shopspring/decimal"

// WarningNoBOMData el producto no tiene BOM activo; distinto de "sin faltantes".
const WarningNoBOMData = "NO_BOM_DATA"

// StationUsageResponse consumo de la pieza en una estación (informativo).
type StationUsageResponse struct {
	StationCode     string          `json:"station_code"`
	StationName     string          `json:"station_name"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// PartRequirementResponse necesidad de una pieza para un plan, neteada contra stock, reservas y recepciones.
type PartRequirementResponse struct {
	PartCode                    string                 `json:"part_code"`
	Specification               string                 `json:"specification"`
	Category                    string                 `json:"category"`
	Supplier                    string                 `json:"supplier"`
	UnitPrice                   decimal.Decimal        `json:"unit_price"`
	LeadTimeDays                int                    `json:"lead_time_days"`
	SafetyStock                 decimal.Decimal        `json:"safety_stock"`
	UnitQuantity                decimal.Decimal        `json:"unit_quantity"`
	RequiredQuantity            decimal.Decimal        `json:"required_quantity"`
	CurrentStock                decimal.Decimal        `json:"current_stock"`
	TotalReservedStock          decimal.Decimal        `json:"total_reserved_stock"`
	PlanReservedQuantity        decimal.Decimal        `json:"plan_reserved_quantity"`
	ScheduledReceiptsUntilStart decimal.Decimal        `json:"scheduled_receipts_until_start"`
	AvailableStock              decimal.Decimal        `json:"available_stock"`
	ShortageQuantity            decimal.Decimal        `json:"shortage_quantity"`
	StartShortage               decimal.Decimal        `json:"start_shortage"` // faltante que bloquea el inicio: solo stock físico
	ProcurementDueDate          string                 `json:"procurement_due_date"`
	IsAwaitingReceipt           bool                   `json:"is_awaiting_receipt"`
	BelowSafetyStock            bool                   `json:"below_safety_stock"`
	Stations                    []StationUsageResponse `json:"stations"`
}

// ShortageSummary resumen de faltantes de un plan.
// CanStart refleja la misma regla que aplica el inicio de producción.
type ShortageSummary struct {
	HasShortage           bool            `json:"has_shortage"`
	TotalParts            int             `json:"total_parts"`
	ShortagePartCount     int             `json:"shortage_part_count"`
	TotalShortageQuantity decimal.Decimal `json:"total_shortage_quantity"`
	CanStart              bool            `json:"can_start"`
}

// RequirementsResponse salida de POST /plans/:id/requirements.
// BOMConfigured=false con Warning=NO_BOM_DATA indica que no hay BOM, no que el stock alcance.
type RequirementsResponse struct {
	PlanID          int64                     `json:"plan_id"`
	ProductCode     string                    `json:"product_code"`
	PlannedQuantity int                       `json:"planned_quantity"`
	StartDate       string                    `json:"start_date"`
	Status          string                    `json:"status"`
	BOMConfigured   bool                      `json:"bom_configured"`
	Warning         string                    `json:"warning,omitempty"`
	Requirements    []PartRequirementResponse `json:"requirements"`
	ShortageSummary ShortageSummary           `json:"shortage_summary"`
}
