package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/usecase"
)

// UserHandler administra colaboradores (solo admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear colaborador
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del colaborador"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), Actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar colaboradores
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        role    query  string  false  "admin | employee"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	in := dto.UserListRequest{PageRequest: pageFromQuery(c), Role: c.Query("role")}
	if err := validateStruct(&in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), Actor(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener colaborador
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar colaborador
// @Description  No modifica puntos; para eso está POST /api/users/{id}/points.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), Actor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar colaborador
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), Actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
