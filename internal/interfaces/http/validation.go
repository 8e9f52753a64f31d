package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rewards-store/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores se reportan con el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return v
}

// validationError agrupa los campos que no pasaron las reglas del DTO.
type validationError struct {
	details []dto.FieldError
}

func (e *validationError) Error() string {
	parts := make([]string, 0, len(e.details))
	for _, d := range e.details {
		parts = append(parts, d.Field+":"+d.Rule)
	}
	return "validación: " + strings.Join(parts, ", ")
}

// validateStruct aplica las reglas `validate` y devuelve *validationError con el detalle.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &validationError{details: make([]dto.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.details = append(out.details, dto.FieldError{
			Field: fieldPath(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "CreateOrderRequest.items[0].quantity" -> "items[0].quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// bindJSON parsea el cuerpo en out y lo valida.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validateStruct(out)
}

// pageFromQuery lee limit/offset y aplica los valores por defecto.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}
