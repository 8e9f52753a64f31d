package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/rewards-store/internal/application/analytics"
	"github.com/jhoicas/rewards-store/internal/application/auth"
	"github.com/jhoicas/rewards-store/internal/application/ledger"
	"github.com/jhoicas/rewards-store/internal/application/orders"
	"github.com/jhoicas/rewards-store/internal/application/usecase"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	OrderUC     *orders.OrderUseCase
	ReceiptUC   *orders.ReceiptUseCase
	PointsUC    *ledger.PointsUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
	ServiceName string
	// Health revisa dependencias externas (DB). Nil = siempre sano.
	Health func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Catálogo: lectura pública (el token, si viene, amplía la visibilidad del admin)
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", OptionalAuth(deps.JWTSecret), productHandler.List)
	products.Get("/:id", OptionalAuth(deps.JWTSecret), productHandler.GetByID)
	products.Post("/", requireAuth, adminOnly, productHandler.Create)
	products.Put("/:id", requireAuth, adminOnly, productHandler.Update)
	products.Delete("/:id", requireAuth, adminOnly, productHandler.Delete)

	// Pedidos
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	ordersGroup := api.Group("/orders", requireAuth)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/mine", orderHandler.ListMine)
	ordersGroup.Get("/", adminOnly, orderHandler.ListAll)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/receipt", orderHandler.Receipt)
	ordersGroup.Patch("/:id/status", adminOnly, orderHandler.UpdateStatus)

	// Puntos del usuario autenticado
	pointsHandler := NewPointsHandler(deps.PointsUC)
	points := api.Group("/points", requireAuth)
	points.Get("/balance", pointsHandler.Balance)
	points.Get("/history", pointsHandler.History)

	// Colaboradores (admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", requireAuth, adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Get("/:id/points", pointsHandler.UserHistory)
	users.Post("/:id/points", pointsHandler.Adjust)
	users.Get("/:id/points/audit", pointsHandler.Audit)

	// Dashboard (admin)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	admin := api.Group("/admin", requireAuth, adminOnly)
	admin.Get("/dashboard", dashboardHandler.GetSummary)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": deps.ServiceName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
