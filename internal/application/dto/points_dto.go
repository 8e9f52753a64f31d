package dto

import "time"

// AdjustPointsRequest entrada para POST /api/users/:id/points.
type AdjustPointsRequest struct {
	Points      int    `json:"points" validate:"required,ne=0,min=-2147483647,max=2147483647"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// BalanceResponse saldo actual del usuario.
type BalanceResponse struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
}

// PointTransactionDTO fila del ledger.
type PointTransactionDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Points      int       `json:"points"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	ReferenceID *string   `json:"reference_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// PointHistoryResponse historial cronológico del ledger.
type PointHistoryResponse struct {
	UserID       string                `json:"user_id"`
	Points       int                   `json:"points"`
	Transactions []PointTransactionDTO `json:"transactions"`
}

// PointAuditResponse compara el saldo cacheado con la suma del ledger.
type PointAuditResponse struct {
	UserID       string `json:"user_id"`
	CachedPoints int    `json:"cached_points"`
	LedgerPoints int    `json:"ledger_points"`
	Difference   int    `json:"difference"`
	Consistent   bool   `json:"consistent"`
	Transactions int    `json:"transactions"`
}
