package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/orders"
)

// OrderHandler maneja canjes, cambios de estado y comprobantes.
type OrderHandler struct {
	uc       *orders.OrderUseCase
	receipts *orders.ReceiptUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, receipts *orders.ReceiptUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, receipts: receipts}
}

// Create godoc
// @Summary      Canjear puntos por productos
// @Description  Valida todas las líneas, descuenta stock y puntos en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Líneas del pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.PlaceOrder(c.UserContext(), Actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Mis pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders/mine [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext(), Actor(c), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Todos los pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | completed | cancelled"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	in := dto.OrderListRequest{PageRequest: pageFromQuery(c), Status: c.Query("status")}
	if err := validateStruct(&in); err != nil {
		return err
	}
	out, err := h.uc.ListAll(c.UserContext(), Actor(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetOrder(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  Cancelar reembolsa los puntos y repone el stock una sola vez.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), Actor(c), c.Params("id"), in.Status)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante de canje en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receipts.Download(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
