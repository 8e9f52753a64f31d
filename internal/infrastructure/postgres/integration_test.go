//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/ledger"
	"github.com/jhoicas/rewards-store/internal/application/orders"
	"github.com/jhoicas/rewards-store/internal/application/usecase"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
	"github.com/jhoicas/rewards-store/internal/domain/rewards"
	"github.com/jhoicas/rewards-store/internal/infrastructure/postgres"
	"github.com/jhoicas/rewards-store/pkg/config"
	"github.com/jhoicas/rewards-store/pkg/logger"
)

var admin = entity.Actor{UserID: uuid.New().String(), Role: entity.RoleAdmin}

// setupDB levanta un PostgreSQL efímero, aplica migraciones y devuelve el pool.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("rewards"),
		tcpostgres.WithUsername("rewards"),
		tcpostgres.WithPassword("rewards"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminar contenedor: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, logger.Nop()))
	// Idempotente: la segunda pasada no reaplica nada.
	require.NoError(t, postgres.Migrate(ctx, pool, logger.Nop()))
	return pool
}

type pgEnv struct {
	pool     *pgxpool.Pool
	tx       *postgres.TxRunner
	users    *postgres.UserRepo
	products *postgres.ProductRepo
	orders   *postgres.OrderRepo
	ledger   *postgres.PointTransactionRepo
	orderUC  *orders.OrderUseCase
	userUC   *usecase.UserUseCase
	pointsUC *ledger.PointsUseCase
}

func newPgEnv(t *testing.T) *pgEnv {
	pool := setupDB(t)
	e := &pgEnv{
		pool:     pool,
		tx:       postgres.NewTxRunner(pool),
		users:    postgres.NewUserRepository(pool),
		products: postgres.NewProductRepository(pool),
		orders:   postgres.NewOrderRepository(pool),
		ledger:   postgres.NewPointTransactionRepository(pool),
	}
	e.orderUC = orders.NewOrderUseCase(e.tx, e.orders, orders.Config{AllowCancelCompleted: true}, logger.Nop())
	e.userUC = usecase.NewUserUseCase(e.tx, e.users, logger.Nop())
	e.pointsUC = ledger.NewPointsUseCase(e.tx, e.users, e.ledger, logger.Nop())
	return e
}

func (e *pgEnv) employee(t *testing.T, email string, points int) entity.Actor {
	t.Helper()
	u, err := e.userUC.Create(context.Background(), admin, dto.CreateUserRequest{
		Email: email, Password: "secreto123", Name: email, InitialPoints: points,
	})
	require.NoError(t, err)
	return entity.Actor{UserID: u.ID, Role: u.Role}
}

func (e *pgEnv) product(t *testing.T, name string, cost, stock int) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID: uuid.New().String(), Name: name, PointsCost: cost, Stock: stock, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func (e *pgEnv) balance(t *testing.T, id string) int {
	u, err := e.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.Points
}

func (e *pgEnv) stock(t *testing.T, id string) int {
	p, err := e.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func TestPostgres_CanjeYCancelacion(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	user := e.employee(t, "ana@empresa.co", 100)
	mug := e.product(t, "Taza", 30, 5)

	placed, err := e.orderUC.PlaceOrder(ctx, user, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: mug.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1001), placed.Order.Number)
	assert.Equal(t, 60, placed.Order.TotalPoints)
	assert.Equal(t, 40, e.balance(t, user.UserID))
	assert.Equal(t, 3, e.stock(t, mug.ID))

	_, err = e.orderUC.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	_, err = e.orderUC.UpdateStatus(ctx, admin, placed.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 100, e.balance(t, user.UserID))
	assert.Equal(t, 5, e.stock(t, mug.ID))

	rows, err := e.ledger.ListByUser(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{100, -60, 60}, []int{rows[0].Points, rows[1].Points, rows[2].Points})
	require.NotNil(t, rows[2].ReferenceID)
	assert.Equal(t, placed.Order.ID, *rows[2].ReferenceID)

	audit, err := e.pointsUC.Audit(ctx, admin, user.UserID)
	require.NoError(t, err)
	assert.True(t, audit.Consistent)
}

func TestPostgres_RechazosNoEscriben(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	poor := e.employee(t, "leo@empresa.co", 10)
	hoodie := e.product(t, "Buzo", 30, 1)

	_, err := e.orderUC.PlaceOrder(ctx, poor, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: hoodie.ID, Quantity: 1}},
	})
	var ipe *domain.InsufficientPointsError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, 10, ipe.UserPoints)
	assert.Equal(t, 30, ipe.RequiredPoints)

	// Id que no es UUID en medio de ids válidos: no debe abortar la tx con un error de sintaxis.
	_, err = e.orderUC.PlaceOrder(ctx, poor, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: hoodie.ID, Quantity: 1}, {ProductID: "no-existe", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	list, err := e.orders.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, e.stock(t, hoodie.ID))
	assert.Equal(t, 10, e.balance(t, poor.UserID))
}

func TestPostgres_ConcurrenciaConBloqueos(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	user := e.employee(t, "eva@empresa.co", 100)
	p := e.product(t, "Termo", 30, 10)

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = e.orderUC.PlaceOrder(ctx, user, dto.CreateOrderRequest{
				Items: []dto.OrderLineRequest{{ProductID: p.ID, Quantity: 1}},
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range results {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
	}
	assert.Equal(t, 3, ok)
	assert.Equal(t, 10, e.balance(t, user.UserID))
	assert.Equal(t, 7, e.stock(t, p.ID))
}

func TestPostgres_IntegridadReferencial(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	user := e.employee(t, "sol@empresa.co", 50)
	p := e.product(t, "Libreta", 10, 3)
	_, err := e.orderUC.PlaceOrder(ctx, user, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, e.products.Delete(ctx, p.ID), domain.ErrProductInUse)
	assert.ErrorIs(t, e.users.Delete(ctx, user.UserID), domain.ErrUserInUse)
	assert.ErrorIs(t, e.products.Delete(ctx, uuid.New().String()), domain.ErrProductNotFound)

	// CHECK (points >= 0) respalda la validación del ledger.
	err = e.users.UpdatePoints(ctx, user.UserID, -1)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.userUC.Create(ctx, admin, dto.CreateUserRequest{Email: "sol@empresa.co", Password: "secreto123", Name: "Sol"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestPostgres_Analitica(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	user := e.employee(t, "rio@empresa.co", 80)
	p := e.product(t, "Gorra", 20, 2)
	_, err := e.orderUC.PlaceOrder(ctx, user, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	repo := postgres.NewAnalyticsRepository(e.pool)
	n, err := repo.CountUsersByRole(ctx, entity.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	low, err := repo.CountLowStock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, low)
	redeemed, err := repo.NetPointsRedeemedSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 20, redeemed)
	outstanding, err := repo.OutstandingPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60, outstanding)
}

func TestPostgres_EdicionDeProductoConservaStock(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	catalog := usecase.NewProductUseCase(e.tx, e.products, logger.Nop())
	user := e.employee(t, "rango@empresa.co", 100)
	p := e.product(t, "Termo", 10, 5)

	_, err := e.orderUC.PlaceOrder(ctx, user, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	name := "Termo grande"
	up, err := catalog.Update(ctx, admin, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 3, up.Stock)
	assert.Equal(t, 3, e.stock(t, p.ID))

	huge := rewards.MaxAmount + 1
	_, err = catalog.Update(ctx, admin, p.ID, dto.UpdateProductRequest{Stock: &huge})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 3, e.stock(t, p.ID))
}
