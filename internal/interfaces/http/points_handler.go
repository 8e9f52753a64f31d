package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/ledger"
)

// PointsHandler expone el saldo, el historial y los ajustes administrativos.
type PointsHandler struct {
	uc *ledger.PointsUseCase
}

// NewPointsHandler construye el handler.
func NewPointsHandler(uc *ledger.PointsUseCase) *PointsHandler {
	return &PointsHandler{uc: uc}
}

// Balance godoc
// @Summary      Saldo propio
// @Tags         points
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BalanceResponse
// @Router       /api/points/balance [get]
func (h *PointsHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.UserContext(), Actor(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial propio de puntos
// @Tags         points
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PointHistoryResponse
// @Router       /api/points/history [get]
func (h *PointsHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), Actor(c), "")
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UserHistory godoc
// @Summary      Historial de puntos de un usuario
// @Tags         points
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.PointHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/points [get]
func (h *PointsHandler) UserHistory(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste administrativo de puntos
// @Description  Positivo abona (earned); negativo descuenta (adjusted) sin dejar el saldo bajo cero.
// @Tags         points
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.AdjustPointsRequest  true  "Puntos y descripción"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/points [post]
func (h *PointsHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustPointsRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Adjust(c.UserContext(), Actor(c), c.Params("id"), in.Points, in.Description)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Audit godoc
// @Summary      Auditoría del saldo contra el ledger
// @Tags         points
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.PointAuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/points/audit [get]
func (h *PointsHandler) Audit(c *fiber.Ctx) error {
	out, err := h.uc.Audit(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
