// Package orders implementa el flujo de canje: creación, cambio de estado con reembolso y consultas.
package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/ledger"
	"github.com/jhoicas/rewards-store/internal/application/ports"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
	"github.com/jhoicas/rewards-store/internal/domain/rewards"
	"github.com/jhoicas/rewards-store/pkg/logger"
)

// Config opciones del flujo de pedidos.
type Config struct {
	// AllowCancelCompleted permite cancelar y reembolsar pedidos ya completados.
	AllowCancelCompleted bool
}

// OrderUseCase orquesta pedidos, stock y ledger dentro de una sola transacción por operación.
type OrderUseCase struct {
	tx     ports.TxRunner
	orders repository.OrderRepository
	policy rewards.TransitionPolicy
	log    *logger.Logger
}

// NewOrderUseCase construye el caso de uso. orders se usa solo para lecturas fuera de tx.
func NewOrderUseCase(tx ports.TxRunner, orders repository.OrderRepository, cfg Config, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{
		tx:     tx,
		orders: orders,
		policy: rewards.TransitionPolicy{AllowCancelCompleted: cfg.AllowCancelCompleted},
		log:    log,
	}
}

// PlaceOrder crea un pedido pending: descuenta stock y debita los puntos del actor.
//
// Orden de validación (falla en el primer error, sin efectos):
//  1. forma de la solicitud                     -> domain.ErrInvalidInput
//  2. por línea: existe / activo / stock        -> *domain.ProductError
//     total fuera de rango (rewards.MaxAmount)  -> domain.ErrInvalidInput
//  3. total contra saldo                        -> *domain.InsufficientPointsError
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, actor entity.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	requested := make([]rewards.Line, 0, len(in.Items))
	for _, it := range in.Items {
		requested = append(requested, rewards.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	lines, err := rewards.NormalizeLines(requested)
	if err != nil {
		return nil, err
	}

	var (
		order *entity.Order
		items []*entity.OrderItem
	)
	err = uc.tx.Run(ctx, func(
		users repository.UserRepository,
		products repository.ProductRepository,
		orders repository.OrderRepository,
		transactions repository.PointTransactionRepository,
	) error {
		// ── 1. Bloqueos: usuario y luego productos en orden de id ────────────
		user, err := users.GetForUpdate(ctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("pedido: bloquear usuario: %w", err)
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if user.Status != entity.UserStatusActive {
			return domain.ErrForbidden
		}
		locked, err := lockProducts(ctx, products, productIDs(lines))
		if err != nil {
			return err
		}

		// ── 2. Validación en orden de la solicitud ───────────────────────────
		total := 0
		for _, l := range lines {
			p := locked[l.ProductID]
			if err := rewards.CheckAvailability(p, l); err != nil {
				return err
			}
			if total, err = rewards.AddLine(total, p.PointsCost, l.Quantity); err != nil {
				return err
			}
		}
		if err := rewards.CheckAffordable(user.Points, total); err != nil {
			return err
		}

		// ── 3. Escrituras ────────────────────────────────────────────────────
		now := time.Now().UTC()
		order = &entity.Order{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			TotalPoints: total,
			Status:      entity.OrderStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := orders.Create(ctx, order); err != nil {
			return fmt.Errorf("pedido: crear cabecera: %w", err)
		}
		items = make([]*entity.OrderItem, 0, len(lines))
		for _, l := range lines {
			p := locked[l.ProductID]
			item := &entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    l.Quantity,
				PointsCost:  p.PointsCost,
			}
			if err := orders.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("pedido: crear línea: %w", err)
			}
			p.Stock -= l.Quantity
			if err := products.UpdateStock(ctx, p.ID, p.Stock); err != nil {
				return fmt.Errorf("pedido: descontar stock: %w", err)
			}
			items = append(items, item)
		}
		ref := order.ID
		_, err = ledger.Apply(ctx, users, transactions, ledger.Entry{
			UserID:      user.ID,
			Points:      -total,
			Type:        entity.TransactionTypeSpent,
			Description: ledger.RedemptionDescription(order.Number),
			ReferenceID: &ref,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Int64("number", order.Number).
		Str("user_id", order.UserID).
		Int("total_points", order.TotalPoints).
		Int("lines", len(items)).
		Msg("pedido creado")
	return dto.ToOrderResponse(order, items), nil
}

// UpdateStatus cambia el estado de un pedido (solo admin).
// Pasar a cancelled reembolsa puntos y repone stock antes de escribir el estado;
// pedir el estado actual no hace nada, así que cancelar dos veces no reembolsa dos veces.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor entity.Actor, orderID, status string) (*dto.OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	var (
		order   *entity.Order
		items   []*entity.OrderItem
		effect  rewards.Effect
		refunds int
	)
	err := uc.tx.Run(ctx, func(
		users repository.UserRepository,
		products repository.ProductRepository,
		orders repository.OrderRepository,
		transactions repository.PointTransactionRepository,
	) error {
		var err error
		order, err = orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return fmt.Errorf("pedido: bloquear: %w", err)
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		effect, err = uc.policy.Transition(order.Status, status)
		if err != nil {
			return err
		}
		items, err = orders.ListItems(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("pedido: leer líneas: %w", err)
		}
		if effect == rewards.EffectNone {
			return nil
		}
		if effect == rewards.EffectRefund {
			if err := uc.refund(ctx, users, products, transactions, order, items); err != nil {
				return err
			}
			refunds = order.TotalPoints
		}
		now := time.Now().UTC()
		if err := orders.UpdateStatus(ctx, order.ID, status, now); err != nil {
			return fmt.Errorf("pedido: actualizar estado: %w", err)
		}
		order.Status = status
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if effect != rewards.EffectNone {
		uc.log.Info().
			Str("order_id", order.ID).
			Int64("number", order.Number).
			Str("status", order.Status).
			Str("admin_id", actor.UserID).
			Int("refunded_points", refunds).
			Msg("estado de pedido actualizado")
	}
	return dto.ToOrderResponse(order, items), nil
}

// refund abona el total al dueño y repone el stock de cada línea.
func (uc *OrderUseCase) refund(
	ctx context.Context,
	users repository.UserRepository,
	products repository.ProductRepository,
	transactions repository.PointTransactionRepository,
	order *entity.Order,
	items []*entity.OrderItem,
) error {
	ref := order.ID
	if _, err := ledger.Apply(ctx, users, transactions, ledger.Entry{
		UserID:      order.UserID,
		Points:      order.TotalPoints,
		Type:        entity.TransactionTypeEarned,
		Description: ledger.RefundDescription(order.Number),
		ReferenceID: &ref,
	}); err != nil {
		return err
	}

	qty := make(map[string]int, len(items))
	for _, it := range items {
		qty[it.ProductID] += it.Quantity
	}
	ids := make([]string, 0, len(qty))
	for id := range qty {
		ids = append(ids, id)
	}
	locked, err := lockProducts(ctx, products, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		p := locked[id]
		if p == nil {
			// order_items.product_id tiene ON DELETE RESTRICT.
			return fmt.Errorf("pedido: producto %s de la línea no existe: %w", id, domain.ErrConflict)
		}
		stock, err := rewards.AddAmounts(p.Stock, qty[id])
		if err != nil {
			return err
		}
		if err := products.UpdateStock(ctx, id, stock); err != nil {
			return fmt.Errorf("pedido: reponer stock: %w", err)
		}
	}
	return nil
}

// GetOrder devuelve un pedido con sus líneas. Un colaborador solo ve los suyos;
// los ajenos se reportan como inexistentes.
func (uc *OrderUseCase) GetOrder(ctx context.Context, actor entity.Actor, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.visibleOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	items, err := uc.orders.ListItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order, items), nil
}

// ListMine lista los pedidos del actor.
func (uc *OrderUseCase) ListMine(ctx context.Context, actor entity.Actor, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	return uc.list(ctx, repository.OrderFilter{UserID: actor.UserID}, page)
}

// ListAll lista todos los pedidos (solo admin), opcionalmente por estado.
func (uc *OrderUseCase) ListAll(ctx context.Context, actor entity.Actor, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.Status != "" && !entity.ValidOrderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(ctx, repository.OrderFilter{Status: in.Status}, in.PageRequest)
}

func (uc *OrderUseCase) list(ctx context.Context, filter repository.OrderFilter, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	filter.Limit, filter.Offset = page.Limit, page.Offset
	list, err := uc.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderDTO, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, o := range list {
		out.Items = append(out.Items, dto.ToOrderDTO(o))
	}
	return out, nil
}

func (uc *OrderUseCase) visibleOrder(ctx context.Context, actor entity.Actor, orderID string) (*entity.Order, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (!actor.IsAdmin() && order.UserID != actor.UserID) {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func productIDs(lines []rewards.Line) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	return ids
}

// lockProducts bloquea los productos en orden ascendente de id para que dos
// transacciones concurrentes siempre tomen los locks en la misma secuencia.
// Los ids inexistentes quedan con valor nil en el mapa.
func lockProducts(ctx context.Context, products repository.ProductRepository, ids []string) (map[string]*entity.Product, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	locked := make(map[string]*entity.Product, len(sorted))
	for _, id := range sorted {
		p, err := products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("pedido: bloquear producto %s: %w", id, err)
		}
		locked[id] = p
	}
	return locked, nil
}
