package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part pieza o material comprado. part_code es la identidad inmutable.
type Part struct {
	PartCode      string
	Specification string
	Category      string
	Supplier      string
	UnitPrice     decimal.Decimal
	LeadTimeDays  int
	SafetyStock   decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
