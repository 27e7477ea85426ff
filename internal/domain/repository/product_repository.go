package repository

import (
	"context"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de productos terminados.
type ProductRepository interface {
	// GetByCode devuelve nil, nil si el producto no existe.
	GetByCode(ctx context.Context, productCode string) (*entity.Product, error)
}

// PartRepository define el puerto de lectura del maestro de piezas.
type PartRepository interface {
	// GetByCodes devuelve las piezas encontradas indexadas por part_code (las inexistentes se omiten).
	GetByCodes(ctx context.Context, partCodes []string) (map[string]*entity.Part, error)
	ListActive(ctx context.Context) ([]*entity.Part, error)
}
