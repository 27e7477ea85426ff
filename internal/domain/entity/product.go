package entity

import "time"

// Product producto terminado que se planifica en production_plans.
// Solo los productos activos aceptan planes nuevos.
type Product struct {
	ProductCode string
	Name        string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
