package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
	"github.com/jhoicas/rewards-store/pkg/jwt"
	"github.com/jhoicas/rewards-store/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, perfil y bootstrap del admin.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.ToUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// EnsureAdmin crea el primer administrador si no existe ninguno. Retorna true si lo creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	exists, err := uc.userRepo.ExistsByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if name == "" {
		name = "Administrador"
	}
	now := time.Now().UTC()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return false, err
	}
	uc.log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("administrador inicial creado")
	return true, nil
}
