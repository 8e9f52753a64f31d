package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/ports"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
	"github.com/jhoicas/rewards-store/internal/domain/rewards"
	"github.com/jhoicas/rewards-store/pkg/logger"
)

// ProductUseCase casos de uso del catálogo. Los no-admin solo ven productos activos.
type ProductUseCase struct {
	tx   ports.TxRunner
	repo repository.ProductRepository
	log  *logger.Logger
}

// NewProductUseCase construye el caso de uso. tx serializa las ediciones con los pedidos.
func NewProductUseCase(tx ports.TxRunner, repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{tx: tx, repo: repo, log: log}
}

// Create crea un producto (solo admin). Activo por defecto.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || !validCost(in.PointsCost) || !validStock(in.Stock) {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		PointsCost:  in.PointsCost,
		Stock:       in.Stock,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("admin_id", actor.UserID).Msg("producto creado")
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto. Un inactivo no existe para quien no es admin.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || (!product.IsActive && !actor.IsAdmin()) {
		return nil, domain.ErrProductNotFound
	}
	return dto.ToProductResponse(product), nil
}

// Update actualiza un producto (solo admin). Cambiar el precio no altera pedidos existentes.
// La fila queda bloqueada durante la edición; el stock solo se escribe si viene en la solicitud.
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if (in.PointsCost != nil && !validCost(*in.PointsCost)) || (in.Stock != nil && !validStock(*in.Stock)) {
		return nil, domain.ErrInvalidInput
	}
	var product *entity.Product
	err := uc.tx.Run(ctx, func(
		_ repository.UserRepository,
		products repository.ProductRepository,
		_ repository.OrderRepository,
		_ repository.PointTransactionRepository,
	) error {
		p, err := products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			p.Name = name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.ImageURL != nil {
			p.ImageURL = *in.ImageURL
		}
		if in.PointsCost != nil {
			p.PointsCost = *in.PointsCost
		}
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		p.UpdatedAt = time.Now().UTC()
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		if in.Stock != nil {
			if err := products.UpdateStock(ctx, p.ID, *in.Stock); err != nil {
				return err
			}
			p.Stock = *in.Stock
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List lista el catálogo con paginación. El filtro Active solo aplica para admin;
// para el resto siempre es Active=true.
func (uc *ProductUseCase) List(ctx context.Context, actor entity.Actor, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	filter := repository.ProductFilter{Active: in.Active, Limit: in.Limit, Offset: in.Offset}
	if !actor.IsAdmin() {
		active := true
		filter.Active = &active
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina un producto (solo admin). Con historial de pedidos retorna
// domain.ErrProductInUse: hay que desactivarlo.
func (uc *ProductUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Str("admin_id", actor.UserID).Msg("producto eliminado")
	return nil
}

func validCost(n int) bool  { return n > 0 && n <= rewards.MaxAmount }
func validStock(n int) bool { return n >= 0 && n <= rewards.MaxAmount }
