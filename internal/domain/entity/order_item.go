package entity

// OrderItem es una línea del pedido. PointsCost y ProductName son la foto del
// producto al momento del canje; no siguen cambios posteriores del catálogo.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	PointsCost  int
}

// Subtotal devuelve PointsCost × Quantity.
func (i OrderItem) Subtotal() int { return i.PointsCost * i.Quantity }
