package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/google/uuid"

	_ "github.com/jhoicas/rewards-store/docs"
	appanalytics "github.com/jhoicas/rewards-store/internal/application/analytics"
	"github.com/jhoicas/rewards-store/internal/application/auth"
	"github.com/jhoicas/rewards-store/internal/application/ledger"
	"github.com/jhoicas/rewards-store/internal/application/orders"
	"github.com/jhoicas/rewards-store/internal/application/ports"
	"github.com/jhoicas/rewards-store/internal/application/usecase"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
	"github.com/jhoicas/rewards-store/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/rewards-store/internal/infrastructure/pdf"
	"github.com/jhoicas/rewards-store/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/rewards-store/internal/interfaces/http"
	"github.com/jhoicas/rewards-store/pkg/config"
	"github.com/jhoicas/rewards-store/pkg/logger"
)

// storage agrupa los adaptadores de persistencia elegidos por DB_DRIVER.
type storage struct {
	tx           ports.TxRunner
	users        repository.UserRepository
	products     repository.ProductRepository
	orders       repository.OrderRepository
	transactions repository.PointTransactionRepository
	analytics    repository.AnalyticsRepository
	health       func(ctx context.Context) error
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		// Solo llega aquí en development (Validate lo exige en otros entornos).
		cfg.JWT.Secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto aleatorio, los tokens no sobreviven un reinicio")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	if cfg.Admin.Enabled() {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if !created {
			log.Debug().Msg("ya existe un administrador; ADMIN_EMAIL ignorado")
		}
	}

	orderUC := orders.NewOrderUseCase(store.tx, store.orders, orders.Config{
		AllowCancelCompleted: cfg.Orders.AllowCancelCompleted,
	}, log)
	receiptUC := orders.NewReceiptUseCase(orderUC, store.users, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	pointsUC := ledger.NewPointsUseCase(store.tx, store.users, store.transactions, log)
	productUC := usecase.NewProductUseCase(store.tx, store.products, log)
	userUC := usecase.NewUserUseCase(store.tx, store.users, log)
	dashboardUC := appanalytics.NewDashboardUseCase(store.analytics, cfg.App.LowStockThreshold)

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Rewards Store API",
		}))
	} else {
		log.Warn().Msg("docs/swagger.json no encontrado; Swagger UI deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		UserUC:      userUC,
		OrderUC:     orderUC,
		ReceiptUC:   receiptUC,
		PointsUC:    pointsUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
		Health:      store.health,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			tx:           memory.NewTxRunner(s),
			users:        memory.NewUserRepository(s),
			products:     memory.NewProductRepository(s),
			orders:       memory.NewOrderRepository(s),
			transactions: memory.NewPointTransactionRepository(s),
			analytics:    memory.NewAnalyticsRepository(s),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		tx:           postgres.NewTxRunner(pool),
		users:        postgres.NewUserRepository(pool),
		products:     postgres.NewProductRepository(pool),
		orders:       postgres.NewOrderRepository(pool),
		transactions: postgres.NewPointTransactionRepository(pool),
		analytics:    postgres.NewAnalyticsRepository(pool),
		health:       pool.Ping,
		close:        pool.Close,
	}, nil
}
