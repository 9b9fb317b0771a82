package app

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	httpRouter "github.com/jhoicas/stockroom-api/internal/interfaces/http"
)

// NewHTTPApp crea la app Fiber con middlewares base, /health y las rutas de la API.
func NewHTTPApp(name string, svc *Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})

	httpRouter.Router(app, svc.RouterDeps())
	return app
}
