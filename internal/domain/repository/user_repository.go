package repository

import (
	"context"

	"github.com/jhoicas/rewards-store/internal/domain/entity"
)

// UserFilter criterios de listado de usuarios.
type UserFilter struct {
	Role   string // vacío = todos
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos que devuelven *entity.User retornan (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetForUpdate obtiene el usuario y bloquea la fila (SELECT FOR UPDATE) dentro de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update persiste datos de perfil, rol, estado y hash; nunca Points.
	Update(ctx context.Context, user *entity.User) error
	// UpdatePoints escribe el saldo cacheado. Solo lo llama ledger.Apply.
	UpdatePoints(ctx context.Context, id string, points int) error
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	ExistsByRole(ctx context.Context, role string) (bool, error)
	// Delete retorna domain.ErrUserInUse si hay pedidos o movimientos asociados.
	Delete(ctx context.Context, id string) error
}
