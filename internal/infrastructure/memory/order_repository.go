package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepository)(nil)

// OrderRepository implementación en memoria.
type OrderRepository struct {
	s    *Store
	inTx bool
}

func NewOrderRepository(s *Store) *OrderRepository {
	return &OrderRepository{s: s}
}

func (r *OrderRepository) Create(_ context.Context, order *entity.Order) error {
	var err error
	r.s.do(r.inTx, func() {
		if _, ok := r.s.orders[order.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		if _, ok := r.s.users[order.UserID]; !ok {
			err = domain.ErrUserNotFound
			return
		}
		order.Number = r.s.nextOrder
		r.s.nextOrder++
		r.s.orders[order.ID] = copyOrder(order)
	})
	return err
}

func (r *OrderRepository) CreateItem(_ context.Context, item *entity.OrderItem) error {
	var err error
	r.s.do(r.inTx, func() {
		if _, ok := r.s.orders[item.OrderID]; !ok {
			err = domain.ErrOrderNotFound
			return
		}
		if _, ok := r.s.products[item.ProductID]; !ok {
			err = domain.ErrProductNotFound
			return
		}
		if item.Quantity <= 0 {
			err = domain.ErrInvalidInput
			return
		}
		r.s.items[item.OrderID] = append(r.s.items[item.OrderID], copyItem(item))
	})
	return err
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	r.s.do(r.inTx, func() { out = copyOrder(r.s.orders[id]) })
	return out, nil
}

func (r *OrderRepository) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) ListItems(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	r.s.do(r.inTx, func() {
		for _, it := range r.s.items[orderID] {
			out = append(out, copyItem(it))
		}
	})
	return out, nil
}

// List devuelve los pedidos del más reciente al más antiguo.
func (r *OrderRepository) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	r.s.do(r.inTx, func() {
		for _, o := range r.s.orders {
			if filter.UserID != "" && o.UserID != filter.UserID {
				continue
			}
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			out = append(out, copyOrder(o))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	var err error
	r.s.do(r.inTx, func() {
		o, ok := r.s.orders[id]
		if !ok {
			err = domain.ErrOrderNotFound
			return
		}
		o.Status = status
		o.UpdatedAt = updatedAt
	})
	return err
}
