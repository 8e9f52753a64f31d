package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/ledger"
	"github.com/jhoicas/rewards-store/internal/application/ports"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
	"github.com/jhoicas/rewards-store/pkg/logger"
)

// UserUseCase administración de colaboradores (solo admin).
type UserUseCase struct {
	tx   ports.TxRunner
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(tx ports.TxRunner, repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{tx: tx, repo: repo, log: log}
}

// Create crea un colaborador. Los puntos iniciales entran por el ledger en la misma tx.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if email == "" || len(in.Password) < 8 || !entity.ValidRole(role) || in.InitialPoints < 0 {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Department:   in.Department,
		ImageURL:     in.ImageURL,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(
		users repository.UserRepository,
		_ repository.ProductRepository,
		_ repository.OrderRepository,
		transactions repository.PointTransactionRepository,
	) error {
		if existing, err := users.GetByEmail(ctx, email); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		if in.InitialPoints == 0 {
			return nil
		}
		u, err := ledger.Apply(ctx, users, transactions, ledger.Entry{
			UserID:      user.ID,
			Points:      in.InitialPoints,
			Type:        entity.TransactionTypeEarned,
			Description: ledger.DescriptionInitialBalance,
		})
		if err != nil {
			return err
		}
		user.Points = u.Points
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Int("points", user.Points).Msg("usuario creado")
	return dto.ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID (solo admin).
func (uc *UserUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// List lista usuarios, opcionalmente por rol.
func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor, in dto.UserListRequest) (*dto.UserListResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.UserFilter{Role: in.Role, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Update actualiza perfil, rol, estado o password. Los puntos solo cambian por el ledger.
func (uc *UserUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.ImageURL != nil {
		user.ImageURL = *in.ImageURL
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		if *in.Status != entity.UserStatusActive && *in.Status != entity.UserStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		user.Status = *in.Status
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Delete elimina un usuario sin historial. Con pedidos o movimientos retorna domain.ErrUserInUse.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if id == actor.UserID {
		return domain.ErrConflict
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Str("admin_id", actor.UserID).Msg("usuario eliminado")
	return nil
}
