package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only del dashboard de administración.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el repositorio de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

func (r *AnalyticsRepo) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, wrapErr(op, err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountUsersByRole(ctx context.Context, role string) (int, error) {
	return r.count(ctx, "count users", `SELECT COUNT(*) FROM users WHERE role = $1`, role)
}

func (r *AnalyticsRepo) CountActiveProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "count active products", `SELECT COUNT(*) FROM products WHERE is_active`)
}

func (r *AnalyticsRepo) CountLowStock(ctx context.Context, threshold int) (int, error) {
	return r.count(ctx, "count low stock",
		`SELECT COUNT(*) FROM products WHERE is_active AND stock <= $1`, threshold)
}

func (r *AnalyticsRepo) CountOrdersByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, "count orders", `SELECT COUNT(*) FROM orders WHERE status = $1`, status)
}

// NetPointsRedeemedSince suma débitos de canje menos reembolsos desde since.
// Solo cuenta filas con pedido de referencia; los ajustes administrativos quedan fuera.
func (r *AnalyticsRepo) NetPointsRedeemedSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "net points redeemed", `
		SELECT COALESCE(-SUM(points), 0)::int
		FROM point_transactions
		WHERE reference_id IS NOT NULL
		  AND type IN ('spent', 'earned')
		  AND created_at >= $1`, since)
}

func (r *AnalyticsRepo) OutstandingPoints(ctx context.Context) (int, error) {
	return r.count(ctx, "outstanding points", `SELECT COALESCE(SUM(points), 0)::int FROM users`)
}
