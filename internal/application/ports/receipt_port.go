package ports

import (
	"context"

	"github.com/jhoicas/rewards-store/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante de canje en PDF.
// Cualquier adaptador (maroto, plantilla HTML, mock) debe implementar esta interfaz.
type ReceiptGenerator interface {
	GenerateReceipt(
		ctx context.Context,
		order *entity.Order,
		items []*entity.OrderItem,
		user *entity.User,
	) ([]byte, error)
}
