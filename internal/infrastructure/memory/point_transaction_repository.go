package memory

import (
	"context"

	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

var _ repository.PointTransactionRepository = (*PointTransactionRepository)(nil)

// PointTransactionRepository ledger en memoria (solo append).
type PointTransactionRepository struct {
	s    *Store
	inTx bool
}

func NewPointTransactionRepository(s *Store) *PointTransactionRepository {
	return &PointTransactionRepository{s: s}
}

func (r *PointTransactionRepository) Create(_ context.Context, tx *entity.PointTransaction) error {
	var err error
	r.s.do(r.inTx, func() {
		if _, ok := r.s.users[tx.UserID]; !ok {
			err = domain.ErrUserNotFound
			return
		}
		r.s.ledger = append(r.s.ledger, copyTransaction(tx))
	})
	return err
}

// ListByUser devuelve las filas en orden de inserción.
func (r *PointTransactionRepository) ListByUser(_ context.Context, userID string) ([]*entity.PointTransaction, error) {
	out := []*entity.PointTransaction{}
	r.s.do(r.inTx, func() {
		for _, t := range r.s.ledger {
			if t.UserID == userID {
				out = append(out, copyTransaction(t))
			}
		}
	})
	return out, nil
}

func (r *PointTransactionRepository) SumByUser(_ context.Context, userID string) (int, error) {
	sum := 0
	r.s.do(r.inTx, func() {
		for _, t := range r.s.ledger {
			if t.UserID == userID {
				sum += t.Points
			}
		}
	})
	return sum, nil
}
