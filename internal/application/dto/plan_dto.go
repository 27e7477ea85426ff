package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanRequest body de POST /plans y PUT /plans/:id.
type PlanRequest struct {
	BuildingNo      string `json:"building_no"`
	ProductCode     string `json:"product_code"`
	PlannedQuantity int    `json:"planned_quantity"`
	StartDate       string `json:"start_date"` // YYYY-MM-DD
	Status          string `json:"status,omitempty"`
	Remarks         string `json:"remarks"`
}

// CompleteProductionRequest body de POST /plans/:id/complete-production.
type CompleteProductionRequest struct {
	ActualQuantity *int `json:"actual_quantity,omitempty"`
}

// PlanListQuery filtros de GET /plans.
type PlanListQuery struct {
	PageRequest
	BuildingNo  string `query:"building_no"`
	ProductCode string `query:"product_code"`
}

// PlanResponse salida de un plan de producción.
type PlanResponse struct {
	ID              int64                 `json:"id"`
	BuildingNo      string                `json:"building_no"`
	ProductCode     string                `json:"product_code"`
	PlannedQuantity int                   `json:"planned_quantity"`
	ActualQuantity  *int                  `json:"actual_quantity,omitempty"`
	StartDate       string                `json:"start_date"`
	Status          string                `json:"status"`
	Remarks         string                `json:"remarks"`
	CreatedBy       string                `json:"created_by"`
	UpdatedBy       string                `json:"updated_by,omitempty"`
	StartedAt       *time.Time            `json:"started_at,omitempty"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Reservations    []ReservationResponse `json:"reservations,omitempty"`
}

// PlanListResponse listado paginado de planes.
type PlanListResponse struct {
	Items []PlanResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// ReservationResponse salida de una reserva de inventario.
type ReservationResponse struct {
	ID               int64           `json:"id"`
	ProductionPlanID int64           `json:"production_plan_id"`
	PartCode         string          `json:"part_code"`
	ReservedQuantity decimal.Decimal `json:"reserved_quantity"`
	ReservationDate  string          `json:"reservation_date"`
	Remarks          string          `json:"remarks"`
	CreatedBy        string          `json:"created_by"`
}

// ReservationSyncResponse resultado de reescribir las reservas de un plan.
type ReservationSyncResponse struct {
	Action  string `json:"action"` // created | recreated | deleted | unchanged
	Deleted int    `json:"deleted"`
	Created int    `json:"created"`
}

// PlanMutationResponse salida de create/update/cancel: plan + efecto sobre reservas.
type PlanMutationResponse struct {
	Plan         PlanResponse            `json:"plan"`
	Reservations ReservationSyncResponse `json:"reservations"`
	BOMWarning   string                  `json:"bom_warning,omitempty"`
}

// PlanDeleteResponse salida de DELETE /plans/:id.
type PlanDeleteResponse struct {
	ID                   int64 `json:"id"`
	ReleasedReservations int   `json:"released_reservations"`
}

// IssueLineResponse consumo de una pieza al iniciar producción.
type IssueLineResponse struct {
	PartCode    string          `json:"part_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
}

// StartProductionResponse salida de POST /plans/:id/start-production.
type StartProductionResponse struct {
	Plan                 PlanResponse        `json:"plan"`
	BatchID              string              `json:"batch_id"`
	Issued               []IssueLineResponse `json:"issued"`
	ReleasedReservations int                 `json:"released_reservations"`
}

// InventoryTransactionResponse salida de una transacción de inventario.
type InventoryTransactionResponse struct {
	ID              int64           `json:"id"`
	BatchID         string          `json:"batch_id"`
	PartCode        string          `json:"part_code"`
	TransactionType string          `json:"transaction_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	StockBefore     decimal.Decimal `json:"stock_before"`
	StockAfter      decimal.Decimal `json:"stock_after"`
	ReferenceType   string          `json:"reference_type"`
	ReferenceID     int64           `json:"reference_id"`
	Remarks         string          `json:"remarks"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}
