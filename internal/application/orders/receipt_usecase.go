package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/rewards-store/internal/application/ports"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un canje.
type ReceiptUseCase struct {
	orders    *OrderUseCase
	users     repository.UserRepository
	generator ports.ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(orders *OrderUseCase, users repository.UserRepository, generator ports.ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, users: users, generator: generator}
}

// Download retorna el PDF y un nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrOrderNotFound      si no existe o no es visible para el actor.
//   - domain.ErrInvalidTransition  si el pedido está cancelado.
func (uc *ReceiptUseCase) Download(ctx context.Context, actor entity.Actor, orderID string) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orders.visibleOrder(ctx, actor, orderID)
	if err != nil {
		return nil, "", err
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, "", fmt.Errorf("%w: el pedido #%d está cancelado", domain.ErrInvalidTransition, order.Number)
	}
	items, err := uc.orders.orders.ListItems(ctx, order.ID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener líneas: %w", err)
	}
	user, err := uc.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}
	pdfBytes, err = uc.generator.GenerateReceipt(ctx, order, items, user)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("canje_%d.pdf", order.Number), nil
}
