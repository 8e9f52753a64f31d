package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrOrderNotFound      = errors.New("pedido no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Reglas de negocio del canje.
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrProductUnavailable = errors.New("producto no disponible")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInsufficientPoints = errors.New("puntos insuficientes")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")

	// Integridad referencial: hay historial que depende del registro.
	ErrProductInUse = errors.New("el producto tiene pedidos asociados")
	ErrUserInUse    = errors.New("el usuario tiene pedidos o movimientos de puntos")
)

// ProductError identifica el producto que hizo fallar una validación del pedido.
// Err es uno de ErrProductNotFound, ErrProductUnavailable o ErrInsufficientStock.
type ProductError struct {
	Err         error
	ProductID   string
	ProductName string
}

func (e *ProductError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("%s: %s", e.Err, e.ProductName)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.ProductID)
}

func (e *ProductError) Unwrap() error { return e.Err }

// InsufficientPointsError lleva el saldo actual y el total requerido para que el
// cliente pueda mostrar el faltante.
type InsufficientPointsError struct {
	UserPoints     int
	RequiredPoints int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("%s: saldo %d, requerido %d", ErrInsufficientPoints, e.UserPoints, e.RequiredPoints)
}

// Shortfall devuelve cuántos puntos faltan.
func (e *InsufficientPointsError) Shortfall() int {
	return e.RequiredPoints - e.UserPoints
}

func (e *InsufficientPointsError) Is(target error) bool {
	return target == ErrInsufficientPoints
}
