package production

import (
	"context"

	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback ante cualquier error, de modo que planes, reservas y stock
// nunca quedan a medio escribir.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
