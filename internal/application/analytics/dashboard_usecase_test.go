package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rewards-store/internal/application/dto"
	"github.com/jhoicas/rewards-store/internal/application/orders"
	"github.com/jhoicas/rewards-store/internal/application/usecase"
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/infrastructure/memory"
	"github.com/jhoicas/rewards-store/pkg/logger"
)

var admin = entity.Actor{UserID: "admin-1", Role: entity.RoleAdmin}

func TestGetSummary(t *testing.T) {
	s := memory.NewStore()
	tx := memory.NewTxRunner(s)
	ctx := context.Background()
	products := usecase.NewProductUseCase(memory.NewTxRunner(s), memory.NewProductRepository(s), logger.Nop())
	users := usecase.NewUserUseCase(tx, memory.NewUserRepository(s), logger.Nop())
	ordersUC := orders.NewOrderUseCase(tx, memory.NewOrderRepository(s), orders.Config{AllowCancelCompleted: true}, logger.Nop())

	mug, err := products.Create(ctx, admin, dto.CreateProductRequest{Name: "Taza", PointsCost: 30, Stock: 5})
	require.NoError(t, err)
	_, err = products.Create(ctx, admin, dto.CreateProductRequest{Name: "Gorra", PointsCost: 10, Stock: 1})
	require.NoError(t, err)
	inactive := false
	_, err = products.Create(ctx, admin, dto.CreateProductRequest{Name: "Vieja", PointsCost: 10, Stock: 0, IsActive: &inactive})
	require.NoError(t, err)

	ana, err := users.Create(ctx, admin, dto.CreateUserRequest{Email: "ana@empresa.co", Password: "secreto123", Name: "Ana", InitialPoints: 100})
	require.NoError(t, err)
	_, err = users.Create(ctx, admin, dto.CreateUserRequest{Email: "leo@empresa.co", Password: "secreto123", Name: "Leo", InitialPoints: 50})
	require.NoError(t, err)

	anaActor := entity.Actor{UserID: ana.ID, Role: ana.Role}
	line := dto.CreateOrderRequest{Items: []dto.OrderLineRequest{{ProductID: mug.ID, Quantity: 1}}}
	_, err = ordersUC.PlaceOrder(ctx, anaActor, line)
	require.NoError(t, err)
	second, err := ordersUC.PlaceOrder(ctx, anaActor, line)
	require.NoError(t, err)
	_, err = ordersUC.UpdateStatus(ctx, admin, second.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)

	uc := NewDashboardUseCase(memory.NewAnalyticsRepository(s), 3)
	got, err := uc.GetSummary(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Employees)
	assert.Equal(t, 2, got.ActiveProducts)
	assert.Equal(t, 1, got.LowStock)
	assert.Equal(t, 1, got.PendingOrders)
	assert.Equal(t, 30, got.MonthlyRedeemed)
	assert.Equal(t, 120, got.OutstandingPoints)
	assert.Equal(t, 3, got.LowStockThreshold)

	_, err = uc.GetSummary(ctx, anaActor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

type failingRepo struct{ *memory.AnalyticsRepository }

func (failingRepo) OutstandingPoints(context.Context) (int, error) {
	return 0, errors.New("conexión perdida")
}

func TestGetSummary_PropagaError(t *testing.T) {
	repo := failingRepo{memory.NewAnalyticsRepository(memory.NewStore())}
	uc := NewDashboardUseCase(repo, 5)
	_, err := uc.GetSummary(context.Background(), admin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saldo circulante")
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Octubre 2026", monthLabel(time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Enero 2025", monthLabel(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
