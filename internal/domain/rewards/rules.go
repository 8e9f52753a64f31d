// Package rewards contiene las reglas puras del canje de puntos (servicio de dominio):
// normalización de líneas, validación de disponibilidad, totales y máquina de estados del pedido.
package rewards

import (
	"math"

	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
)

// MaxAmount es el mayor valor admitido para costos, stock, cantidades, saldos y totales
// (columna INTEGER de PostgreSQL).
const MaxAmount = math.MaxInt32

// Line es una línea solicitada (producto + cantidad).
type Line struct {
	ProductID string
	Quantity  int
}

// NormalizeLines valida la forma de la solicitud y fusiona productos repetidos
// (suma cantidades) conservando el orden de primera aparición.
func NormalizeLines(lines []Line) ([]Line, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	out := make([]Line, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if l.Quantity > MaxAmount {
			return nil, domain.ErrInvalidInput
		}
		if i, ok := index[l.ProductID]; ok {
			q, err := AddAmounts(out[i].Quantity, l.Quantity)
			if err != nil {
				return nil, err
			}
			out[i].Quantity = q
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out, nil
}

// CheckAvailability aplica, en orden, existencia -> activo -> stock para una línea.
// product nil significa que no existe.
func CheckAvailability(product *entity.Product, line Line) error {
	if product == nil {
		return &domain.ProductError{Err: domain.ErrProductNotFound, ProductID: line.ProductID}
	}
	if !product.IsActive {
		return &domain.ProductError{Err: domain.ErrProductUnavailable, ProductID: product.ID, ProductName: product.Name}
	}
	if product.Stock < line.Quantity {
		return &domain.ProductError{Err: domain.ErrInsufficientStock, ProductID: product.ID, ProductName: product.Name}
	}
	return nil
}

// CheckAffordable retorna InsufficientPointsError si el saldo no cubre el total.
func CheckAffordable(balance, total int) error {
	if total > balance {
		return &domain.InsufficientPointsError{UserPoints: balance, RequiredPoints: total}
	}
	return nil
}

// AddAmounts suma a + b y retorna domain.ErrInvalidInput si el resultado sale de
// [-MaxAmount, MaxAmount].
func AddAmounts(a, b int) (int, error) {
	if a > MaxAmount || a < -MaxAmount || b > MaxAmount || b < -MaxAmount {
		return 0, domain.ErrInvalidInput
	}
	sum := a + b
	if sum > MaxAmount || sum < -MaxAmount {
		return 0, domain.ErrInvalidInput
	}
	return sum, nil
}

// LineSubtotal calcula cost × quantity sin desbordar. Ambos deben ser positivos.
func LineSubtotal(cost, quantity int) (int, error) {
	if cost <= 0 || quantity <= 0 || cost > MaxAmount || quantity > MaxAmount {
		return 0, domain.ErrInvalidInput
	}
	if cost > MaxAmount/quantity {
		return 0, domain.ErrInvalidInput
	}
	return cost * quantity, nil
}

// AddLine acumula el subtotal de una línea en total.
func AddLine(total, cost, quantity int) (int, error) {
	sub, err := LineSubtotal(cost, quantity)
	if err != nil {
		return 0, err
	}
	return AddAmounts(total, sub)
}

// OrderTotal suma PointsCost × Quantity de las líneas.
func OrderTotal(items []*entity.OrderItem) int {
	total := 0
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// AdjustmentType clasifica un ajuste administrativo: positivo = earned, resto = adjusted.
func AdjustmentType(delta int) string {
	if delta > 0 {
		return entity.TransactionTypeEarned
	}
	return entity.TransactionTypeAdjusted
}
