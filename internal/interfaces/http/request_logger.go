package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/rewards-store/pkg/logger"
)

// NewApp crea la app Fiber con el manejo de errores y middlewares comunes.
func NewApp(appName string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	return app
}

// RequestLogger registra una línea por petición: método, ruta, status, latencia, request id y usuario.
// El error del handler se resuelve aquí para que el status registrado sea el definitivo.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return nil
	}
}
