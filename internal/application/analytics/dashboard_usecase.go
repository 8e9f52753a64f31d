// Package analytics contiene los casos de uso de reportes para administración.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

// DashboardUseCase genera el resumen del programa de puntos.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, lowStockThreshold int) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, lowStockThreshold: lowStockThreshold, now: time.Now}
}

// GetSummary ejecuta las seis consultas en paralelo; la primera que falle cancela el resto.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actor entity.Actor) (*dto.DashboardSummaryDTO, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := &dto.DashboardSummaryDTO{
		LowStockThreshold: uc.lowStockThreshold,
		DateLabel:         monthLabel(now),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Employees, err = uc.analyticsRepo.CountUsersByRole(gctx, entity.RoleEmployee)
		return wrap("colaboradores", err)
	})
	g.Go(func() (err error) {
		out.ActiveProducts, err = uc.analyticsRepo.CountActiveProducts(gctx)
		return wrap("productos activos", err)
	})
	g.Go(func() (err error) {
		out.LowStock, err = uc.analyticsRepo.CountLowStock(gctx, uc.lowStockThreshold)
		return wrap("stock bajo", err)
	})
	g.Go(func() (err error) {
		out.PendingOrders, err = uc.analyticsRepo.CountOrdersByStatus(gctx, entity.OrderStatusPending)
		return wrap("pedidos pendientes", err)
	})
	g.Go(func() (err error) {
		out.MonthlyRedeemed, err = uc.analyticsRepo.NetPointsRedeemedSince(gctx, monthStart)
		return wrap("canjes del mes", err)
	})
	g.Go(func() (err error) {
		out.OutstandingPoints, err = uc.analyticsRepo.OutstandingPoints(gctx)
		return wrap("saldo circulante", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
