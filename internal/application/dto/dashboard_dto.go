package dto

// DashboardSummaryDTO respuesta de GET /api/admin/dashboard.
type DashboardSummaryDTO struct {
	Employees      int `json:"employees"`
	ActiveProducts int `json:"active_products"`
	LowStock       int `json:"low_stock"` // activos con stock <= umbral
	PendingOrders  int `json:"pending_orders"`

	// Puntos canjeados en el mes en curso, netos de reembolsos.
	MonthlyRedeemed int `json:"monthly_redeemed"`
	// Suma de saldos de todos los usuarios.
	OutstandingPoints int `json:"outstanding_points"`

	LowStockThreshold int    `json:"low_stock_threshold"`
	DateLabel         string `json:"date_label"` // ej: "Octubre 2026"
}
