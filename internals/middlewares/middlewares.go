package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"examgpt_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global dengan urutan yang benar:
// recovery paling luar, lalu logging, CORS, dan rate limiter.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
