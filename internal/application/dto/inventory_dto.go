package dto

import "github.com/shopspring/decimal"

// ReplenishmentSuggestionDTO pieza cuyo stock libre quedó por debajo del stock de seguridad.
type ReplenishmentSuggestionDTO struct {
	PartCode            string          `json:"part_code"`
	Specification       string          `json:"specification"`
	Supplier            string          `json:"supplier"`
	CurrentStock        decimal.Decimal `json:"current_stock"`
	ReservedStock       decimal.Decimal `json:"reserved_stock"`
	ScheduledReceipts   decimal.Decimal `json:"scheduled_receipts"`
	FreeStock           decimal.Decimal `json:"free_stock"`            // current - reserved + scheduled
	SafetyStock         decimal.Decimal `json:"safety_stock"`
	SuggestedOrderQty   decimal.Decimal `json:"suggested_order_qty"`   // SafetyStock - FreeStock
	UnitPrice           decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost  decimal.Decimal `json:"estimated_order_cost"`  // SuggestedOrderQty * UnitPrice
	LeadTimeDays        int             `json:"lead_time_days"`
	ExpectedArrivalDate string          `json:"expected_arrival_date"` // hoy + lead time
	Priority            int             `json:"priority"`              // 1 = más urgente
}
