package dto

import "time"

// OrderLineRequest una línea del canje.
type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,max=2147483647"`
}

// CreateOrderRequest entrada para POST /api/orders.
type CreateOrderRequest struct {
	Items []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest entrada para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// OrderListRequest filtros de listado (admin).
type OrderListRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=pending completed cancelled"`
}

// OrderDTO cabecera del pedido.
type OrderDTO struct {
	ID          string    `json:"id"`
	Number      int64     `json:"number"`
	UserID      string    `json:"user_id"`
	TotalPoints int       `json:"total_points"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderItemDTO línea del pedido con los valores congelados al momento del canje.
type OrderItemDTO struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	PointsCost  int    `json:"points_cost"`
	Subtotal    int    `json:"subtotal"`
}

// OrderResponse salida de un pedido: {order, items}.
type OrderResponse struct {
	Order OrderDTO       `json:"order"`
	Items []OrderItemDTO `json:"items"`
}

// OrderListResponse lista paginada de pedidos (sin líneas).
type OrderListResponse struct {
	Items []OrderDTO   `json:"items"`
	Page  PageResponse `json:"page"`
}
