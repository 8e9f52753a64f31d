package repository

import (
	"context"

	"github.com/jhoicas/rewards-store/internal/domain/entity"
)

// PointTransactionRepository define el puerto del ledger (solo inserción y lectura).
type PointTransactionRepository interface {
	Create(ctx context.Context, tx *entity.PointTransaction) error
	// ListByUser devuelve el historial en orden cronológico.
	ListByUser(ctx context.Context, userID string) ([]*entity.PointTransaction, error)
	SumByUser(ctx context.Context, userID string) (int, error)
}
