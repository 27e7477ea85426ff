package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recepción programada (orden de compra pendiente).
const (
	ReceiptStatusAwaitingReply = "納期回答待ち"
	ReceiptStatusScheduled     = "入荷予定"
	ReceiptStatusReceived      = "入荷済み"
	ReceiptStatusCancelled     = "キャンセル"
)

// ScheduledReceipt orden de compra que se espera que ingrese stock en una fecha.
type ScheduledReceipt struct {
	ID                int64
	OrderNo           string
	PartCode          string
	Supplier          string
	OrderQuantity     decimal.Decimal
	ScheduledQuantity *decimal.Decimal
	OrderDate         time.Time
	RequestedDate     *time.Time
	ScheduledDate     *time.Time
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsOutstanding indica si la recepción aún puede sumar stock.
func (r *ScheduledReceipt) IsOutstanding() bool {
	return r.Status == ReceiptStatusAwaitingReply || r.Status == ReceiptStatusScheduled
}

// ExpectedQuantity cantidad programada; si el proveedor no respondió, la cantidad pedida.
func (r *ScheduledReceipt) ExpectedQuantity() decimal.Decimal {
	if r.ScheduledQuantity != nil {
		return *r.ScheduledQuantity
	}
	return r.OrderQuantity
}

// ExpectedDate fecha programada o, en su defecto, la fecha solicitada.
func (r *ScheduledReceipt) ExpectedDate() *time.Time {
	if r.ScheduledDate != nil {
		return r.ScheduledDate
	}
	return r.RequestedDate
}
