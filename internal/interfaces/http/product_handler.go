package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/usecase"
)

// ProductHandler maneja el catálogo. Lectura pública; escritura solo admin.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), Actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Description  Los productos inactivos solo son visibles para administradores.
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar catálogo
// @Description  Empleados y anónimos ven solo productos activos; el filtro active aplica a administradores.
// @Tags         products
// @Produce      json
// @Param        limit   query  int   false  "Límite"   default(20)
// @Param        offset  query  int   false  "Offset"   default(0)
// @Param        active  query  bool  false  "Filtrar por estado (admin)"
// @Success      200     {object}  dto.ProductListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	in := dto.ProductListRequest{PageRequest: pageFromQuery(c)}
	if raw := c.Query("active"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return &validationError{details: []dto.FieldError{{Field: "active", Rule: "boolean"}}}
		}
		in.Active = &b
	}
	out, err := h.uc.List(c.UserContext(), Actor(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
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
// @Summary      Eliminar producto
// @Description  Rechazado con 409 si el producto tiene pedidos; en ese caso se desactiva.
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), Actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
