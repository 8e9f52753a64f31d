package repository

import (
	"context"
	"time"
)

// AnalyticsRepository define las consultas de lectura del dashboard de administración.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	CountUsersByRole(ctx context.Context, role string) (int, error)
	CountActiveProducts(ctx context.Context) (int, error)
	// CountLowStock cuenta productos activos con stock <= threshold.
	CountLowStock(ctx context.Context, threshold int) (int, error)
	CountOrdersByStatus(ctx context.Context, status string) (int, error)
	// NetPointsRedeemedSince suma débitos menos reembolsos de pedidos desde since.
	NetPointsRedeemedSince(ctx context.Context, since time.Time) (int, error)
	// OutstandingPoints suma los saldos de todos los usuarios.
	OutstandingPoints(ctx context.Context) (int, error)
}
