package dto

import "time"

// CreateUserRequest entrada para crear un colaborador (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Department    string `json:"department" validate:"omitempty,max=100"`
	ImageURL      string `json:"image_url" validate:"omitempty,url"`
	Role          string `json:"role" validate:"omitempty,oneof=admin employee"`
	InitialPoints int    `json:"initial_points" validate:"gte=0,max=2147483647"`
}

// UpdateUserRequest entrada para actualizar perfil, rol, estado o password. No toca puntos.
type UpdateUserRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	ImageURL   *string `json:"image_url" validate:"omitempty,url"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin employee"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
}

// UserListRequest filtros del listado de colaboradores.
type UserListRequest struct {
	PageRequest
	Role string `query:"role" validate:"omitempty,oneof=admin employee"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	ImageURL   string    `json:"image_url"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	Points     int       `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
