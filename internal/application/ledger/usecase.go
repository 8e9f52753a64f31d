package ledger

import (
	"context"
	"strings"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/ports"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
	"github.com/jhoicas/rewards-store/internal/domain/rewards"
	"github.com/jhoicas/rewards-store/pkg/logger"
)

// PointsUseCase casos de uso de consulta y ajuste de puntos.
type PointsUseCase struct {
	tx           ports.TxRunner
	users        repository.UserRepository
	transactions repository.PointTransactionRepository
	log          *logger.Logger
}

// NewPointsUseCase construye el caso de uso.
func NewPointsUseCase(
	tx ports.TxRunner,
	users repository.UserRepository,
	transactions repository.PointTransactionRepository,
	log *logger.Logger,
) *PointsUseCase {
	return &PointsUseCase{tx: tx, users: users, transactions: transactions, log: log}
}

// Balance devuelve el saldo del usuario autenticado.
func (uc *PointsUseCase) Balance(ctx context.Context, actor entity.Actor) (*dto.BalanceResponse, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.BalanceResponse{UserID: user.ID, Points: user.Points}, nil
}

// History devuelve el ledger cronológico. userID vacío = el propio.
// Un colaborador solo puede ver su propio historial.
func (uc *PointsUseCase) History(ctx context.Context, actor entity.Actor, userID string) (*dto.PointHistoryResponse, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	if userID == "" {
		userID = actor.UserID
	}
	if userID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	rows, err := uc.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.PointHistoryResponse{
		UserID:       user.ID,
		Points:       user.Points,
		Transactions: make([]dto.PointTransactionDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.Transactions = append(out.Transactions, dto.ToPointTransactionDTO(r))
	}
	return out, nil
}

// Adjust aplica un ajuste administrativo (solo admin). Positivo = earned, negativo = adjusted.
func (uc *PointsUseCase) Adjust(
	ctx context.Context,
	actor entity.Actor,
	userID string,
	points int,
	description string,
) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if userID == "" || points == 0 {
		return nil, domain.ErrInvalidInput
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = DescriptionAdjustment
	}

	var updated *entity.User
	err := uc.tx.Run(ctx, func(
		users repository.UserRepository,
		_ repository.ProductRepository,
		_ repository.OrderRepository,
		transactions repository.PointTransactionRepository,
	) error {
		u, err := Apply(ctx, users, transactions, Entry{
			UserID:      userID,
			Points:      points,
			Type:        rewards.AdjustmentType(points),
			Description: description,
		})
		if err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("admin_id", actor.UserID).
		Str("user_id", userID).
		Int("points", points).
		Int("balance", updated.Points).
		Msg("ajuste de puntos aplicado")
	return dto.ToUserResponse(updated), nil
}

// Audit compara el saldo cacheado con la suma del ledger (solo admin). No corrige nada.
func (uc *PointsUseCase) Audit(ctx context.Context, actor entity.Actor, userID string) (*dto.PointAuditResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	rows, err := uc.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum, err := uc.transactions.SumByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := &dto.PointAuditResponse{
		UserID:       user.ID,
		CachedPoints: user.Points,
		LedgerPoints: sum,
		Difference:   user.Points - sum,
		Consistent:   user.Points == sum,
		Transactions: len(rows),
	}
	if !res.Consistent {
		uc.log.Warn().
			Str("user_id", user.ID).
			Int("cached", user.Points).
			Int("ledger", sum).
			Msg("saldo cacheado no coincide con el ledger")
	}
	return res, nil
}
