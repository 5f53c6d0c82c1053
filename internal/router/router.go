package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/redis/go-redis/v9"
)

func Setup(app *fiber.App, rdb *redis.Client, cfg *config.Config, rules *config.Rules) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    cfg.AppName,
		})
	})

	// Web routes (HTML)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{
			"Title": "List Order to RAW Converter",
		})
	})

	// API routes (JSON)
	api := app.Group("/api/v1")
	SetupAPIRoutes(api, rdb, cfg, rules)
}
