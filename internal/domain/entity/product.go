package entity

import "time"

// Product representa un artículo canjeable del catálogo.
// Stock solo lo modifican los pedidos (descuento/reposición) y la reposición del admin.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	ImageURL    string
	PointsCost  int // precio en puntos (> 0)
	Stock       int // unidades disponibles (>= 0)
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
