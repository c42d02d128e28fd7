package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"examgpt_backend/internals/features/analytics/controller"
	authMw "examgpt_backend/internals/middlewares/auth"
)

func AnalyticsRoutes(api fiber.Router, db *gorm.DB, ossOK, geminiOK, resendOK bool) {
	ctrl := controller.NewAnalyticsController(db, ossOK, geminiOK, resendOK)

	analytics := api.Group("/analytics", authMw.AuthMiddleware(db), authMw.AdminOnly())
	analytics.Get("/dashboard", ctrl.Dashboard)
	analytics.Get("/features", ctrl.Health)
}
