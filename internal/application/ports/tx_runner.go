package ports

import (
	"context"

	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error no queda ningún cambio persistido (pedido, líneas, stock ni ledger).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		users repository.UserRepository,
		products repository.ProductRepository,
		orders repository.OrderRepository,
		ledger repository.PointTransactionRepository,
	) error) error
}
