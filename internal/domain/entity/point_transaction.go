package entity

import "time"

// Tipos de movimiento del ledger de puntos.
const (
	TransactionTypeEarned   = "earned"
	TransactionTypeSpent    = "spent"
	TransactionTypeAdjusted = "adjusted"
)

// PointTransaction es una fila inmutable del ledger. Points es positivo para
// abonos y negativo para débitos. ReferenceID apunta al pedido que lo originó.
type PointTransaction struct {
	ID          string
	UserID      string
	Points      int
	Description string
	Type        string
	ReferenceID *string
	CreatedAt   time.Time
}
