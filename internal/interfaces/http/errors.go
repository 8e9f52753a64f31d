package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/pkg/logger"
)

// errInvalidBody se devuelve cuando el cuerpo no es JSON válido para el DTO.
var errInvalidBody = errors.New("cuerpo inválido")

// ErrorHandler traduce los errores que devuelven los handlers al cuerpo dto.ErrorResponse.
// Los errores no clasificados se registran y salen como 500 con mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
		}
		return c.Status(status).JSON(body)
	}
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		fe  *fiber.Error
		ve  *validationError
		pe  *domain.ProductError
		ipe *domain.InsufficientPointsError
	)

	switch {
	case errors.As(err, &fe):
		return fe.Code, dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message}
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Details: ve.details}

	case errors.As(err, &pe):
		body := dto.ErrorResponse{Message: pe.Error(), ProductID: pe.ProductID, ProductName: pe.ProductName}
		switch {
		case errors.Is(pe, domain.ErrProductNotFound):
			body.Code = "PRODUCT_NOT_FOUND"
			return fiber.StatusNotFound, body
		case errors.Is(pe, domain.ErrInsufficientStock):
			body.Code = "INSUFFICIENT_STOCK"
		default:
			body.Code = "PRODUCT_UNAVAILABLE"
		}
		return fiber.StatusUnprocessableEntity, body
	case errors.As(err, &ipe):
		userPoints, required, shortfall := ipe.UserPoints, ipe.RequiredPoints, ipe.Shortfall()
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:           "INSUFFICIENT_POINTS",
			Message:        "puntos insuficientes",
			UserPoints:     &userPoints,
			RequiredPoints: &required,
			Shortfall:      &shortfall,
		}
	case errors.Is(err, domain.ErrInsufficientPoints):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "INSUFFICIENT_POINTS", Message: "puntos insuficientes"}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"}
	case errors.Is(err, domain.ErrProductUnavailable):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "PRODUCT_UNAVAILABLE", Message: "producto no disponible"}

	case errors.Is(err, domain.ErrProductNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"}
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"}
	case errors.Is(err, domain.ErrOrderNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}

	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}

	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"}
	case errors.Is(err, domain.ErrProductInUse):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "PRODUCT_IN_USE", Message: "el producto tiene pedidos; desactívelo en su lugar"}
	case errors.Is(err, domain.ErrUserInUse):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "USER_IN_USE", Message: "el usuario tiene historial; desactívelo en su lugar"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual, reintente"}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	default:
		return "HTTP_ERROR"
	}
}
