package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

var _ repository.PointTransactionRepository = (*PointTransactionRepo)(nil)

// PointTransactionRepo ledger sobre PostgreSQL. No expone UPDATE ni DELETE.
type PointTransactionRepo struct {
	db Querier
}

func NewPointTransactionRepository(db Querier) *PointTransactionRepo {
	return &PointTransactionRepo{db: db}
}

func (r *PointTransactionRepo) Create(ctx context.Context, t *entity.PointTransaction) error {
	query := `
		INSERT INTO point_transactions (id, user_id, points, description, type, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		t.ID, t.UserID, t.Points, t.Description, t.Type, t.ReferenceID, t.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert point transaction", err)
	}
	return nil
}

// ListByUser devuelve el historial en orden de inserción (seq).
func (r *PointTransactionRepo) ListByUser(ctx context.Context, userID string) ([]*entity.PointTransaction, error) {
	out := []*entity.PointTransaction{}
	if !validID(userID) {
		return out, nil
	}
	query := `
		SELECT id, user_id, points, description, type, reference_id, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY seq`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, wrapErr("list point transactions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t entity.PointTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Points, &t.Description, &t.Type, &t.ReferenceID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan point transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *PointTransactionRepo) SumByUser(ctx context.Context, userID string) (int, error) {
	if !validID(userID) {
		return 0, nil
	}
	var sum int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(points), 0) FROM point_transactions WHERE user_id = $1`, userID,
	).Scan(&sum)
	if err != nil {
		return 0, wrapErr("sum point transactions", err)
	}
	return sum, nil
}
