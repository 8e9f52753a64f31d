package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rewards-store/internal/application/ledger"
	"github.com/jhoicas/rewards-store/internal/application/orders"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
	"github.com/jhoicas/rewards-store/internal/infrastructure/memory"
	"github.com/jhoicas/rewards-store/pkg/logger"
)

var admin = entity.Actor{UserID: "admin-1", Role: entity.RoleAdmin}

type fixture struct {
	tx       *memory.TxRunner
	users    *memory.UserRepository
	products *memory.ProductRepository
	orders   *memory.OrderRepository
	ledger   *memory.PointTransactionRepository
	uc       *orders.OrderUseCase
	points   *ledger.PointsUseCase
}

func newFixture(t testing.TB, cfg orders.Config) *fixture {
	t.Helper()
	s := memory.NewStore()
	f := &fixture{
		tx:       memory.NewTxRunner(s),
		users:    memory.NewUserRepository(s),
		products: memory.NewProductRepository(s),
		orders:   memory.NewOrderRepository(s),
		ledger:   memory.NewPointTransactionRepository(s),
	}
	f.uc = orders.NewOrderUseCase(f.tx, f.orders, cfg, logger.Nop())
	f.points = ledger.NewPointsUseCase(f.tx, f.users, f.ledger, logger.Nop())
	return f
}

// seedUser crea un colaborador y le acredita points por el ledger.
func (f *fixture) seedUser(t testing.TB, points int) entity.Actor {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	u := &entity.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@empresa.co",
		Name:      "Colaborador",
		Role:      entity.RoleEmployee,
		Status:    entity.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.users.Create(ctx, u))
	if points > 0 {
		err := f.tx.Run(ctx, func(
			users repository.UserRepository,
			_ repository.ProductRepository,
			_ repository.OrderRepository,
			tr repository.PointTransactionRepository,
		) error {
			_, err := ledger.Apply(ctx, users, tr, ledger.Entry{
				UserID:      u.ID,
				Points:      points,
				Type:        entity.TransactionTypeEarned,
				Description: ledger.DescriptionInitialBalance,
			})
			return err
		})
		require.NoError(t, err)
	}
	return entity.Actor{UserID: u.ID, Role: entity.RoleEmployee}
}

func (f *fixture) seedProduct(t testing.TB, name string, cost, stock int, active bool) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		PointsCost: cost,
		Stock:      stock,
		IsActive:   active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) balance(t testing.TB, userID string) int {
	t.Helper()
	u, err := f.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.Points
}

func (f *fixture) stock(t testing.TB, productID string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) history(t testing.TB, userID string) []*entity.PointTransaction {
	t.Helper()
	rows, err := f.ledger.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	return rows
}

// requireConsistent comprueba que el saldo cacheado sea la suma del ledger.
func (f *fixture) requireConsistent(t testing.TB, userID string) {
	t.Helper()
	sum, err := f.ledger.SumByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, sum, f.balance(t, userID), "saldo cacheado distinto a la suma del ledger")
}
