package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/orders"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

func orderReq(lines ...dto.OrderLineRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{Items: lines}
}

func line(productID string, qty int) dto.OrderLineRequest {
	return dto.OrderLineRequest{ProductID: productID, Quantity: qty}
}

func TestPlaceOrder_DebitaPuntosYStock(t *testing.T) {
	f := newFixture(t, orders.Config{AllowCancelCompleted: true})
	ctx := context.Background()
	user := f.seedUser(t, 100)
	mug := f.seedProduct(t, "Taza", 30, 5, true)

	res, err := f.uc.PlaceOrder(ctx, user, orderReq(line(mug.ID, 2)))
	require.NoError(t, err)

	assert.Equal(t, 60, res.Order.TotalPoints)
	assert.Equal(t, entity.OrderStatusPending, res.Order.Status)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Taza", res.Items[0].ProductName)
	assert.Equal(t, 30, res.Items[0].PointsCost)
	assert.Equal(t, 60, res.Items[0].Subtotal)

	assert.Equal(t, 40, f.balance(t, user.UserID))
	assert.Equal(t, 3, f.stock(t, mug.ID))

	rows := f.history(t, user.UserID)
	require.Len(t, rows, 2)
	spent := rows[1]
	assert.Equal(t, -60, spent.Points)
	assert.Equal(t, entity.TransactionTypeSpent, spent.Type)
	require.NotNil(t, spent.ReferenceID)
	assert.Equal(t, res.Order.ID, *spent.ReferenceID)
	assert.Equal(t, "Canje pedido #1001", spent.Description)
	f.requireConsistent(t, user.UserID)
}

func TestUpdateStatus_CancelarReembolsa(t *testing.T) {
	f := newFixture(t, orders.Config{AllowCancelCompleted: true})
	ctx := context.Background()
	user := f.seedUser(t, 100)
	mug := f.seedProduct(t, "Taza", 30, 5, true)
	placed, err := f.uc.PlaceOrder(ctx, user, orderReq(line(mug.ID, 2)))
	require.NoError(t, err)

	res, err := f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, res.Order.Status)

	assert.Equal(t, 100, f.balance(t, user.UserID))
	assert.Equal(t, 5, f.stock(t, mug.ID))
	rows := f.history(t, user.UserID)
	require.Len(t, rows, 3)
	refund := rows[2]
	assert.Equal(t, 60, refund.Points)
	assert.Equal(t, entity.TransactionTypeEarned, refund.Type)
	assert.Equal(t, "Reembolso pedido #1001", refund.Description)
	require.NotNil(t, refund.ReferenceID)
	assert.Equal(t, placed.Order.ID, *refund.ReferenceID)
	f.requireConsistent(t, user.UserID)
}

func TestPlaceOrder_PuntosInsuficientes(t *testing.T) {
	f := newFixture(t, orders.Config{})
	ctx := context.Background()
	user := f.seedUser(t, 10)
	hoodie := f.seedProduct(t, "Buzo", 30, 5, true)

	_, err := f.uc.PlaceOrder(ctx, user, orderReq(line(hoodie.ID, 1)))
	require.ErrorIs(t, err, domain.ErrInsufficientPoints)
	var ipe *domain.InsufficientPointsError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, 10, ipe.UserPoints)
	assert.Equal(t, 30, ipe.RequiredPoints)

	assert.Equal(t, 10, f.balance(t, user.UserID))
	assert.Equal(t, 5, f.stock(t, hoodie.ID))
	assert.Len(t, f.history(t, user.UserID), 1)
	list, err := f.orders.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPlaceOrder_StockInsuficiente(t *testing.T) {
	f := newFixture(t, orders.Config{})
	ctx := context.Background()
	user := f.seedUser(t, 500)
	last := f.seedProduct(t, "Audífonos", 30, 1, true)

	_, err := f.uc.PlaceOrder(ctx, user, orderReq(line(last.ID, 2)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var pe *domain.ProductError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, last.ID, pe.ProductID)

	assert.Equal(t, 500, f.balance(t, user.UserID))
	assert.Equal(t, 1, f.stock(t, last.ID))
	assert.Len(t, f.history(t, user.UserID), 1)
}

func TestPlaceOrder_ValidacionEnOrden(t *testing.T) {
	f := newFixture(t, orders.Config{})
	ctx := context.Background()
	user := f.seedUser(t, 10)
	inactive := f.seedProduct(t, "Descontinuado", 5, 10, false)
	scarce := f.seedProduct(t, "Escaso", 5, 0, true)

	cases := []struct {
		name string
		req  dto.CreateOrderRequest
		want error
	}{
		{"sin líneas", orderReq(), domain.ErrInvalidInput},
		{"cantidad cero", orderReq(line(scarce.ID, 0)), domain.ErrInvalidInput},
		{"producto inexistente primero", orderReq(line("no-existe", 1), line(inactive.ID, 1)), domain.ErrProductNotFound},
		{"inactivo antes que stock", orderReq(line(inactive.ID, 1), line(scarce.ID, 1)), domain.ErrProductUnavailable},
		{"stock antes que puntos", orderReq(line(scarce.ID, 1)), domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.PlaceOrder(ctx, user, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 10, f.balance(t, user.UserID))
	assert.Equal(t, 10, f.stock(t, inactive.ID))
}

func TestPlaceOrder_FusionaLineasRepetidas(t *testing.T) {
	f := newFixture(t, orders.Config{})
	ctx := context.Background()
	user := f.seedUser(t, 100)
	pen := f.seedProduct(t, "Esfero", 10, 3, true)

	res, err := f.uc.PlaceOrder(ctx, user, orderReq(line(pen.ID, 2), line(pen.ID, 1)))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 3, res.Items[0].Quantity)
	assert.Equal(t, 0, f.stock(t, pen.ID))

	// La suma de líneas repetidas supera el stock: se rechaza completo.
	f2 := newFixture(t, orders.Config{})
	u2 := f2.seedUser(t, 100)
	p2 := f2.seedProduct(t, "Esfero", 10, 2, true)
	_, err = f2.uc.PlaceOrder(ctx, u2, orderReq(line(p2.ID, 1), line(p2.ID, 2)))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f2.stock(t, p2.ID))
}

func TestPlaceOrder_FalloParcialNoDejaRastro(t *testing.T) {
	f := newFixture(t, orders.Config{})
	ctx := context.Background()
	user := f.seedUser(t, 100)
	ok := f.seedProduct(t, "Libreta", 10, 5, true)
	empty := f.seedProduct(t, "Termo", 10, 0, true)

	_, err := f.uc.PlaceOrder(ctx, user, orderReq(line(ok.ID, 2), line(empty.ID, 1)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 5, f.stock(t, ok.ID))
	assert.Equal(t, 100, f.balance(t, user.UserID))
	list, err := f.orders.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPlaceOrder_TotalFueraDeRango(t *testing.T) {
	f := newFixture(t, orders.Config{})
	ctx := context.Background()
	user := f.seedUser(t, 100)

	cases := map[string]struct{ cost, qty int }{
		"envuelve a positivo": {1<<62 + 1, 4},
		"envuelve a negativo": {1 << 62, 3},
		"excede INTEGER":      {1 << 30, 2},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			p := f.seedProduct(t, "Lingote", c.cost, c.qty, true)
			_, err := f.uc.PlaceOrder(ctx, user, orderReq(line(p.ID, c.qty)))
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 100, f.balance(t, user.UserID))
			assert.Equal(t, c.qty, f.stock(t, p.ID))
		})
	}
	assert.Len(t, f.history(t, user.UserID), 1)
	f.requireConsistent(t, user.UserID)
}

func TestPlaceOrder_SnapshotDePrecio(t *testing.T) {
	f := newFixture(t, orders.Config{})
	ctx := context.Background()
	user := f.seedUser(t, 100)
	hat := f.seedProduct(t, "Gorra", 20, 5, true)

	placed, err := f.uc.PlaceOrder(ctx, user, orderReq(line(hat.ID, 1)))
	require.NoError(t, err)

	hat.PointsCost = 99
	hat.Name = "Gorra edición especial"
	require.NoError(t, f.products.Update(ctx, hat))

	got, err := f.uc.GetOrder(ctx, user, placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Items[0].PointsCost)
	assert.Equal(t, "Gorra", got.Items[0].ProductName)
	assert.Equal(t, 20, got.Order.TotalPoints)
}

func TestPlaceOrder_UsuarioInactivoOAnonimo(t *testing.T) {
	f := newFixture(t, orders.Config{})
	ctx := context.Background()
	p := f.seedProduct(t, "Taza", 10, 5, true)

	_, err := f.uc.PlaceOrder(ctx, entity.Actor{}, orderReq(line(p.ID, 1)))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.PlaceOrder(ctx, entity.Actor{UserID: "fantasma", Role: entity.RoleEmployee}, orderReq(line(p.ID, 1)))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	user := f.seedUser(t, 50)
	u, err := f.users.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	u.Status = entity.UserStatusInactive
	require.NoError(t, f.users.Update(ctx, u))
	_, err = f.uc.PlaceOrder(ctx, user, orderReq(line(p.ID, 1)))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_CancelarDosVecesEsIdempotente(t *testing.T) {
	f := newFixture(t, orders.Config{AllowCancelCompleted: true})
	ctx := context.Background()
	user := f.seedUser(t, 100)
	p := f.seedProduct(t, "Taza", 30, 5, true)
	placed, err := f.uc.PlaceOrder(ctx, user, orderReq(line(p.ID, 1)))
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	again, err := f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, again.Order.Status)

	assert.Equal(t, 100, f.balance(t, user.UserID))
	assert.Equal(t, 5, f.stock(t, p.ID))
	assert.Len(t, f.history(t, user.UserID), 3)
	f.requireConsistent(t, user.UserID)
}

func TestUpdateStatus_Transiciones(t *testing.T) {
	ctx := context.Background()

	t.Run("completar no toca saldo ni stock", func(t *testing.T) {
		f := newFixture(t, orders.Config{AllowCancelCompleted: true})
		user := f.seedUser(t, 100)
		p := f.seedProduct(t, "Taza", 30, 5, true)
		placed, err := f.uc.PlaceOrder(ctx, user, orderReq(line(p.ID, 1)))
		require.NoError(t, err)

		res, err := f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusCompleted, res.Order.Status)
		assert.Equal(t, 70, f.balance(t, user.UserID))
		assert.Equal(t, 4, f.stock(t, p.ID))

		_, err = f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusPending)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("cancelar completado reembolsa si está permitido", func(t *testing.T) {
		f := newFixture(t, orders.Config{AllowCancelCompleted: true})
		user := f.seedUser(t, 100)
		p := f.seedProduct(t, "Taza", 30, 5, true)
		placed, err := f.uc.PlaceOrder(ctx, user, orderReq(line(p.ID, 1)))
		require.NoError(t, err)
		_, err = f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCompleted)
		require.NoError(t, err)

		_, err = f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, 100, f.balance(t, user.UserID))
		assert.Equal(t, 5, f.stock(t, p.ID))
	})

	t.Run("cancelar completado bloqueado", func(t *testing.T) {
		f := newFixture(t, orders.Config{AllowCancelCompleted: false})
		user := f.seedUser(t, 100)
		p := f.seedProduct(t, "Taza", 30, 5, true)
		placed, err := f.uc.PlaceOrder(ctx, user, orderReq(line(p.ID, 1)))
		require.NoError(t, err)
		_, err = f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCompleted)
		require.NoError(t, err)

		_, err = f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, 70, f.balance(t, user.UserID))
		assert.Equal(t, 4, f.stock(t, p.ID))
	})

	t.Run("cancelado es terminal", func(t *testing.T) {
		f := newFixture(t, orders.Config{AllowCancelCompleted: true})
		user := f.seedUser(t, 100)
		p := f.seedProduct(t, "Taza", 30, 5, true)
		placed, err := f.uc.PlaceOrder(ctx, user, orderReq(line(p.ID, 1)))
		require.NoError(t, err)
		_, err = f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCancelled)
		require.NoError(t, err)

		for _, st := range []string{entity.OrderStatusPending, entity.OrderStatusCompleted} {
			_, err = f.uc.UpdateStatus(ctx, admin, placed.Order.ID, st)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		}
		assert.Equal(t, 100, f.balance(t, user.UserID))
	})

	t.Run("reembolso con stock reducido por el admin", func(t *testing.T) {
		f := newFixture(t, orders.Config{AllowCancelCompleted: true})
		user := f.seedUser(t, 100)
		p := f.seedProduct(t, "Taza", 30, 5, true)
		placed, err := f.uc.PlaceOrder(ctx, user, orderReq(line(p.ID, 2)))
		require.NoError(t, err)
		require.NoError(t, f.products.UpdateStock(ctx, p.ID, 0))

		_, err = f.uc.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, 2, f.stock(t, p.ID))
	})
}

func TestUpdateStatus_Permisos(t *testing.T) {
	f := newFixture(t, orders.Config{AllowCancelCompleted: true})
	ctx := context.Background()
	user := f.seedUser(t, 100)
	p := f.seedProduct(t, "Taza", 30, 5, true)
	placed, err := f.uc.PlaceOrder(ctx, user, orderReq(line(p.ID, 1)))
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, user, placed.Order.ID, entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.uc.UpdateStatus(ctx, admin, "no-existe", entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	_, err = f.uc.UpdateStatus(ctx, admin, placed.Order.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 70, f.balance(t, user.UserID))
}

func TestConsultas_Visibilidad(t *testing.T) {
	f := newFixture(t, orders.Config{})
	ctx := context.Background()
	alice := f.seedUser(t, 100)
	bob := f.seedUser(t, 100)
	p := f.seedProduct(t, "Taza", 10, 10, true)

	a1, err := f.uc.PlaceOrder(ctx, alice, orderReq(line(p.ID, 1)))
	require.NoError(t, err)
	_, err = f.uc.PlaceOrder(ctx, alice, orderReq(line(p.ID, 2)))
	require.NoError(t, err)
	_, err = f.uc.PlaceOrder(ctx, bob, orderReq(line(p.ID, 1)))
	require.NoError(t, err)

	mine, err := f.uc.ListMine(ctx, alice, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 2)
	assert.Greater(t, mine.Items[0].Number, mine.Items[1].Number)
	assert.Equal(t, 20, mine.Page.Limit)

	_, err = f.uc.GetOrder(ctx, bob, a1.Order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	got, err := f.uc.GetOrder(ctx, admin, a1.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, got.Order.UserID)

	_, err = f.uc.ListAll(ctx, bob, dto.OrderListRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	all, err := f.uc.ListAll(ctx, admin, dto.OrderListRequest{Status: entity.OrderStatusPending})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	none, err := f.uc.ListAll(ctx, admin, dto.OrderListRequest{Status: entity.OrderStatusCancelled})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
}
