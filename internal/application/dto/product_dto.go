package dto

import "time"

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	PointsCost  int    `json:"points_cost" validate:"required,gt=0,max=2147483647"`
	Stock       int    `json:"stock" validate:"gte=0,max=2147483647"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil no se tocan.
// Un cambio de PointsCost no afecta las líneas de pedidos ya creadas.
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	PointsCost  *int    `json:"points_cost" validate:"omitempty,gt=0,max=2147483647"`
	Stock       *int    `json:"stock" validate:"omitempty,gte=0,max=2147483647"`
	IsActive    *bool   `json:"is_active"`
}

// ProductListRequest filtros del catálogo. Active solo lo respeta un admin.
type ProductListRequest struct {
	PageRequest
	Active *bool `query:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	PointsCost  int       `json:"points_cost"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
