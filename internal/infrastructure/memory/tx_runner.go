package memory

import (
	"context"

	"github.com/jhoicas/rewards-store/internal/application/ports"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con el Store bloqueado; si fn falla (o entra en pánico) restaura la copia previa.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	ledger repository.PointTransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	committed := false
	defer func() {
		if !committed {
			r.s.restore(snap)
		}
	}()

	if err := fn(
		&UserRepository{s: r.s, inTx: true},
		&ProductRepository{s: r.s, inTx: true},
		&OrderRepository{s: r.s, inTx: true},
		&PointTransactionRepository{s: r.s, inTx: true},
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	committed = true
	return nil
}
