package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o están fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// FieldError detalle de un campo que no pasó la validación.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
// Los campos opcionales solo se llenan según el código (VALIDATION, INSUFFICIENT_*, PRODUCT_*).
type ErrorResponse struct {
	Code           string       `json:"code"`
	Message        string       `json:"message"`
	Details        []FieldError `json:"details,omitempty"`
	ProductID      string       `json:"product_id,omitempty"`
	ProductName    string       `json:"product_name,omitempty"`
	UserPoints     *int         `json:"user_points,omitempty"`
	RequiredPoints *int         `json:"required_points,omitempty"`
	Shortfall      *int         `json:"shortfall,omitempty"`
}
