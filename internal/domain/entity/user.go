package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un colaborador con saldo de puntos.
// Points es un acumulado cacheado del ledger: solo cambia vía ledger.Apply.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Department   string
	ImageURL     string
	Role         string // admin, employee
	Status       string // active, inactive
	Points       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario es administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// ValidRole indica si role es un rol conocido.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

// Actor es la identidad que ejecuta una operación (la entrega el middleware de auth).
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin indica si el actor tiene rol administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Anonymous indica que no hay usuario autenticado.
func (a Actor) Anonymous() bool { return a.UserID == "" }
