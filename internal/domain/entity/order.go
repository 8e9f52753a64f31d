package entity

import "time"

// Estados de un pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus indica si s es un estado conocido.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order es la cabecera de un canje. TotalPoints se fija al crearlo.
type Order struct {
	ID          string
	Number      int64 // consecutivo legible (#1001, #1002, ...)
	UserID      string
	TotalPoints int
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
