package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación en memoria.
type ProductRepository struct {
	s    *Store
	inTx bool
}

func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{s: s}
}

func (r *ProductRepository) Create(_ context.Context, product *entity.Product) error {
	var err error
	r.s.do(r.inTx, func() {
		if _, ok := r.s.products[product.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		if product.PointsCost <= 0 || product.Stock < 0 {
			err = domain.ErrInvalidInput
			return
		}
		r.s.products[product.ID] = copyProduct(product)
	})
	return err
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.s.do(r.inTx, func() { out = copyProduct(r.s.products[id]) })
	return out, nil
}

func (r *ProductRepository) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Update(_ context.Context, product *entity.Product) error {
	var err error
	r.s.do(r.inTx, func() {
		cur, ok := r.s.products[product.ID]
		if !ok {
			err = domain.ErrProductNotFound
			return
		}
		if product.PointsCost <= 0 {
			err = domain.ErrInvalidInput
			return
		}
		next := copyProduct(product)
		next.Stock = cur.Stock
		r.s.products[product.ID] = next
	})
	return err
}

func (r *ProductRepository) UpdateStock(_ context.Context, id string, stock int) error {
	var err error
	r.s.do(r.inTx, func() {
		p, ok := r.s.products[id]
		if !ok {
			err = domain.ErrProductNotFound
			return
		}
		if stock < 0 {
			err = domain.ErrConflict
			return
		}
		p.Stock = stock
	})
	return err
}

func (r *ProductRepository) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	r.s.do(r.inTx, func() {
		for _, p := range r.s.products {
			if filter.Active != nil && p.IsActive != *filter.Active {
				continue
			}
			out = append(out, copyProduct(p))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	var err error
	r.s.do(r.inTx, func() {
		if _, ok := r.s.products[id]; !ok {
			err = domain.ErrProductNotFound
			return
		}
		for _, lines := range r.s.items {
			for _, it := range lines {
				if it.ProductID == id {
					err = domain.ErrProductInUse
					return
				}
			}
		}
		delete(r.s.products, id)
	})
	return err
}
