package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"examgpt_backend/internals/features/tests/controller"
	"examgpt_backend/internals/helpers/gemini"
	authMw "examgpt_backend/internals/middlewares/auth"
)

func TestRoutes(api fiber.Router, db *gorm.DB, ai *gemini.Service) {
	ctrl := controller.NewTestController(db, ai)

	test := api.Group("/test", authMw.AuthMiddleware(db))
	test.Post("/submit", ctrl.Submit)
	test.Get("/results", ctrl.Results)
	test.Get("/results/:userId", ctrl.Results)
	test.Get("/result/:id", ctrl.ResultDetail)
}
