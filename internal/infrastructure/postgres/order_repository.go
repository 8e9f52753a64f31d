package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, number, user_id, total_points, status, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	db Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(db Querier) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create inserta la cabecera; el consecutivo lo asigna order_number_seq.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, user_id, total_points, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING number`
	err := r.db.QueryRow(ctx, query,
		o.ID, o.UserID, o.TotalPoints, o.Status, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.Number)
	if err != nil {
		return wrapErr("insert order", err)
	}
	return nil
}

// CreateItem inserta una línea con el nombre y precio congelados.
func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, points_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		it.ID, it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.PointsCost,
	)
	if err != nil {
		return wrapErr("insert order item", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "get order", `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene el pedido bloqueando la fila hasta el fin de la tx.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "lock order", `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// ListItems devuelve las líneas del pedido.
func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	if !validID(orderID) {
		return nil, nil
	}
	query := `
		SELECT id, order_id, product_id, product_name, quantity, points_cost
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name, id`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, wrapErr("list order items", err)
	}
	defer rows.Close()

	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.PointsCost); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List devuelve los pedidos del más reciente al más antiguo.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	if filter.UserID != "" && !validID(filter.UserID) {
		return nil, nil
	}
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1::uuid IS NULL OR user_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY number DESC
		LIMIT $3 OFFSET $4`
	var userID any
	if filter.UserID != "" {
		userID = filter.UserID
	}
	rows, err := r.db.Query(ctx, query, userID, filter.Status, limitOrAll(filter.Limit), filter.Offset)
	if err != nil {
		return nil, wrapErr("list orders", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return wrapErr("update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return o, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.Number, &o.UserID, &o.TotalPoints, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
