package repository

import (
	"context"
	"time"

	"github.com/jhoicas/rewards-store/internal/domain/entity"
)

// OrderFilter criterios de listado de pedidos.
type OrderFilter struct {
	UserID string // vacío = todos
	Status string // vacío = todos
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	// Create persiste la cabecera y asigna order.Number.
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del pedido (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
}
