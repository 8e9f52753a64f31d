// Package ledger concentra el único camino por el que cambia el saldo de un usuario:
// cada cambio escribe el saldo cacheado y agrega su fila al historial en la misma transacción.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
	"github.com/jhoicas/rewards-store/internal/domain/rewards"
)

// Descripciones estándar de los movimientos automáticos.
const (
	DescriptionInitialBalance = "Saldo inicial"
	DescriptionAdjustment     = "Ajuste administrativo"
)

// RedemptionDescription texto del débito de un canje.
func RedemptionDescription(orderNumber int64) string {
	return fmt.Sprintf("Canje pedido #%d", orderNumber)
}

// RefundDescription texto del abono por cancelación.
func RefundDescription(orderNumber int64) string {
	return fmt.Sprintf("Reembolso pedido #%d", orderNumber)
}

// Entry es un movimiento a aplicar. Points es con signo.
type Entry struct {
	UserID      string
	Points      int
	Type        string
	Description string
	ReferenceID *string
}

// Apply bloquea al usuario, calcula el nuevo saldo, rechaza un resultado negativo o fuera de rango,
// escribe el saldo cacheado y agrega la fila del ledger.
// Debe llamarse con repos atados a una transacción abierta (ports.TxRunner).
func Apply(
	ctx context.Context,
	users repository.UserRepository,
	transactions repository.PointTransactionRepository,
	e Entry,
) (*entity.User, error) {
	if e.Points == 0 {
		return nil, domain.ErrInvalidInput
	}
	user, err := users.GetForUpdate(ctx, e.UserID)
	if err != nil {
		return nil, fmt.Errorf("ledger: bloquear usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	balance, err := rewards.AddAmounts(user.Points, e.Points)
	if err != nil {
		return nil, err
	}
	if balance < 0 {
		return nil, &domain.InsufficientPointsError{UserPoints: user.Points, RequiredPoints: -e.Points}
	}
	if err := users.UpdatePoints(ctx, user.ID, balance); err != nil {
		return nil, fmt.Errorf("ledger: actualizar saldo: %w", err)
	}
	row := &entity.PointTransaction{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Points:      e.Points,
		Description: e.Description,
		Type:        e.Type,
		ReferenceID: e.ReferenceID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := transactions.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("ledger: registrar movimiento: %w", err)
	}
	user.Points = balance
	return user, nil
}
