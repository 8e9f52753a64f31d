package memory

import (
	"context"
	"time"

	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

// AnalyticsRepository consultas del dashboard sobre el Store.
type AnalyticsRepository struct {
	s *Store
}

func NewAnalyticsRepository(s *Store) *AnalyticsRepository {
	return &AnalyticsRepository{s: s}
}

func (r *AnalyticsRepository) CountUsersByRole(_ context.Context, role string) (int, error) {
	n := 0
	r.s.do(false, func() {
		for _, u := range r.s.users {
			if u.Role == role {
				n++
			}
		}
	})
	return n, nil
}

func (r *AnalyticsRepository) CountActiveProducts(_ context.Context) (int, error) {
	n := 0
	r.s.do(false, func() {
		for _, p := range r.s.products {
			if p.IsActive {
				n++
			}
		}
	})
	return n, nil
}

func (r *AnalyticsRepository) CountLowStock(_ context.Context, threshold int) (int, error) {
	n := 0
	r.s.do(false, func() {
		for _, p := range r.s.products {
			if p.IsActive && p.Stock <= threshold {
				n++
			}
		}
	})
	return n, nil
}

func (r *AnalyticsRepository) CountOrdersByStatus(_ context.Context, status string) (int, error) {
	n := 0
	r.s.do(false, func() {
		for _, o := range r.s.orders {
			if o.Status == status {
				n++
			}
		}
	})
	return n, nil
}

// NetPointsRedeemedSince suma débitos de canje menos reembolsos (filas con pedido de referencia).
func (r *AnalyticsRepository) NetPointsRedeemedSince(_ context.Context, since time.Time) (int, error) {
	net := 0
	r.s.do(false, func() {
		for _, t := range r.s.ledger {
			if t.ReferenceID == nil || t.CreatedAt.Before(since) {
				continue
			}
			switch t.Type {
			case entity.TransactionTypeSpent, entity.TransactionTypeEarned:
				net -= t.Points
			}
		}
	})
	return net, nil
}

func (r *AnalyticsRepository) OutstandingPoints(_ context.Context) (int, error) {
	sum := 0
	r.s.do(false, func() {
		for _, u := range r.s.users {
			sum += u.Points
		}
	})
	return sum, nil
}
