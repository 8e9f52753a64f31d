package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/rewards-store/internal/application/analytics"
)

// DashboardHandler maneja el tablero del administrador.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los indicadores del programa de puntos.
// GET /api/admin/dashboard
//
// Respuesta: DashboardSummaryDTO (employees, active_products, low_stock, pending_orders,
// monthly_redeemed, outstanding_points, date_label).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), Actor(c))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
