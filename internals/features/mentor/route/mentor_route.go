package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"examgpt_backend/internals/features/mentor/controller"
	"examgpt_backend/internals/helpers/gemini"
	authMw "examgpt_backend/internals/middlewares/auth"
)

// Mentor hanya untuk user premium.
func MentorRoutes(api fiber.Router, db *gorm.DB, ai *gemini.Service) {
	ctrl := controller.NewMentorController(db, ai)

	mentor := api.Group("/ai-mentor", authMw.AuthMiddleware(db), authMw.PremiumOnly())
	mentor.Post("/chat", ctrl.Chat)
	mentor.Get("/history", ctrl.History)
}
