package repository

import (
	"context"

	"github.com/jhoicas/rewards-store/internal/domain/entity"
)

// ProductFilter criterios de listado del catálogo.
type ProductFilter struct {
	Active *bool // nil = todos
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update escribe los campos editables; conserva el stock actual.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe el stock (usado por el flujo de pedidos dentro de la tx).
	UpdateStock(ctx context.Context, id string, stock int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Delete retorna domain.ErrProductInUse si el producto tiene líneas de pedido.
	Delete(ctx context.Context, id string) error
}
