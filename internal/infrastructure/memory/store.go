// Package memory implementa los repositorios en proceso (DB_DRIVER=memory y tests).
// Una transacción toma el mutex del Store completo y restaura una copia si falla,
// lo que equivale a serializar todas las operaciones de escritura.
package memory

import (
	"sync"

	"github.com/jhoicas/rewards-store/internal/domain/entity"
)

// Store guarda las tablas en mapas protegidos por un único mutex.
type Store struct {
	mu sync.Mutex

	users     map[string]*entity.User
	products  map[string]*entity.Product
	orders    map[string]*entity.Order
	items     map[string][]*entity.OrderItem // por order_id
	ledger    []*entity.PointTransaction
	nextOrder int64
}

// firstOrderNumber primer consecutivo visible de pedido.
const firstOrderNumber int64 = 1001

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]*entity.User),
		products:  make(map[string]*entity.Product),
		orders:    make(map[string]*entity.Order),
		items:     make(map[string][]*entity.OrderItem),
		nextOrder: firstOrderNumber,
	}
}

// do ejecuta fn con el mutex tomado, salvo que el llamador ya esté dentro de una tx.
func (s *Store) do(inTx bool, fn func()) {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

type snapshot struct {
	users     map[string]*entity.User
	products  map[string]*entity.Product
	orders    map[string]*entity.Order
	items     map[string][]*entity.OrderItem
	ledger    []*entity.PointTransaction
	nextOrder int64
}

// snapshot copia el estado; se llama con el mutex tomado.
func (s *Store) snapshot() snapshot {
	snap := snapshot{
		users:     make(map[string]*entity.User, len(s.users)),
		products:  make(map[string]*entity.Product, len(s.products)),
		orders:    make(map[string]*entity.Order, len(s.orders)),
		items:     make(map[string][]*entity.OrderItem, len(s.items)),
		ledger:    make([]*entity.PointTransaction, len(s.ledger)),
		nextOrder: s.nextOrder,
	}
	for k, v := range s.users {
		snap.users[k] = copyUser(v)
	}
	for k, v := range s.products {
		snap.products[k] = copyProduct(v)
	}
	for k, v := range s.orders {
		snap.orders[k] = copyOrder(v)
	}
	for k, v := range s.items {
		lines := make([]*entity.OrderItem, len(v))
		for i, it := range v {
			lines[i] = copyItem(it)
		}
		snap.items[k] = lines
	}
	// Las filas del ledger son inmutables: basta copiar el slice.
	copy(snap.ledger, s.ledger)
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.products = snap.products
	s.orders = snap.orders
	s.items = snap.items
	s.ledger = snap.ledger
	s.nextOrder = snap.nextOrder
}

func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func copyOrder(o *entity.Order) *entity.Order {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

func copyItem(i *entity.OrderItem) *entity.OrderItem {
	c := *i
	return &c
}

func copyTransaction(t *entity.PointTransaction) *entity.PointTransaction {
	c := *t
	if t.ReferenceID != nil {
		ref := *t.ReferenceID
		c.ReferenceID = &ref
	}
	return &c
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
