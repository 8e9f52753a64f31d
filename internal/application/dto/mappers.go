package dto

import "github.com/jhoicas/rewards-store/internal/domain/entity"

// ToUserResponse convierte la entidad sin exponer el hash de la contraseña.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Department: u.Department,
		ImageURL:   u.ImageURL,
		Role:       u.Role,
		Status:     u.Status,
		Points:     u.Points,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		PointsCost:  p.PointsCost,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToOrderDTO(o *entity.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID,
		Number:      o.Number,
		UserID:      o.UserID,
		TotalPoints: o.TotalPoints,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToOrderResponse arma {order, items}.
func ToOrderResponse(o *entity.Order, items []*entity.OrderItem) *OrderResponse {
	out := &OrderResponse{Order: ToOrderDTO(o), Items: make([]OrderItemDTO, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, OrderItemDTO{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			PointsCost:  it.PointsCost,
			Subtotal:    it.Subtotal(),
		})
	}
	return out
}

func ToPointTransactionDTO(t *entity.PointTransaction) PointTransactionDTO {
	return PointTransactionDTO{
		ID:          t.ID,
		UserID:      t.UserID,
		Points:      t.Points,
		Description: t.Description,
		Type:        t.Type,
		ReferenceID: t.ReferenceID,
		CreatedAt:   t.CreatedAt,
	}
}
